package printer

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/robgonnella/zlink/internal/exception"
	"github.com/robgonnella/zlink/internal/logger"
	"gorm.io/datatypes"
)

// PrinterService represents our printer.Service implementation
type PrinterService struct {
	log  logger.Logger
	repo Repo
	now  func() time.Time
}

// NewService returns a new instance of PrinterService
func NewService(repo Repo) *PrinterService {
	return &PrinterService{
		log:  logger.NewComponent("printer"),
		repo: repo,
		now:  time.Now,
	}
}

// ID returns the stable record id for a printer handle on a transport
func ID(transport Transport, handle string) string {
	sum := sha1.Sum([]byte(string(transport) + ":" + handle))
	return hex.EncodeToString(sum[:])
}

// GetAll returns every recorded printer, most recently seen first
func (s *PrinterService) GetAll() ([]*Printer, error) {
	return s.repo.GetAllPrinters()
}

// RecordDiscovery adds unseen handles and refreshes LastSeen for known ones
func (s *PrinterService) RecordDiscovery(transport Transport, handles []string) error {
	now := s.now().UTC()

	for _, handle := range handles {
		if handle == "" {
			continue
		}

		existing, err := s.repo.GetPrinterByID(ID(transport, handle))

		if errors.Is(err, exception.ErrRecordNotFound) {
			_, err := s.repo.AddPrinter(&Printer{
				ID:        ID(transport, handle),
				Transport: transport,
				Handle:    handle,
				FirstSeen: now,
				LastSeen:  now,
			})

			if err != nil {
				return err
			}

			s.log.Info().
				Str("transport", string(transport)).
				Str("handle", handle).
				Msg("recorded new printer")

			continue
		}

		if err != nil {
			return err
		}

		existing.LastSeen = now

		if _, err := s.repo.UpdatePrinter(existing); err != nil {
			return err
		}
	}

	return nil
}

// SetInfo stores device information for a printer, recording it first if
// it was never discovered
func (s *PrinterService) SetInfo(transport Transport, handle string, info map[string]string) error {
	if err := s.RecordDiscovery(transport, []string{handle}); err != nil {
		return err
	}

	existing, err := s.repo.GetPrinterByID(ID(transport, handle))

	if err != nil {
		return err
	}

	raw, err := json.Marshal(info)

	if err != nil {
		return err
	}

	existing.Info = datatypes.JSON(raw)

	_, err = s.repo.UpdatePrinter(existing)

	return err
}

// Remove deletes a printer record
func (s *PrinterService) Remove(id string) error {
	return s.repo.RemovePrinter(id)
}
