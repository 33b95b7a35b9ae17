package zpl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robgonnella/zlink/internal/logger"
	"github.com/robgonnella/zlink/internal/transport"
)

// Language is a printer control language reported by the printer
type Language string

// Control languages we recognize
const (
	LanguageZPL       Language = "zpl"
	LanguageCPCL      Language = "cpcl"
	LanguageLinePrint Language = "line_print"
	LanguageUnknown   Language = "unknown"
)

// Errors returned by the printer stack
var (
	ErrNoResponse     = errors.New("printer did not respond")
	ErrInvalidStatus  = errors.New("invalid host status response")
	ErrNotInitialized = errors.New("printer stack not initialized")
)

const (
	getLanguagesCmd = "! U1 getvar \"device.languages\"\r\n"
	hostStatusCmd   = "~HS"
)

// Printer is the minimal printer stack bound to one open connection
type Printer struct {
	conn     transport.Connection
	language Language
	log      logger.Logger
}

// NewPrinter binds a printer stack to conn and validates that the printer
// answers on it
func NewPrinter(conn transport.Connection) (*Printer, error) {
	if conn == nil || !conn.IsConnected() {
		return nil, ErrNotInitialized
	}

	p := &Printer{
		conn:     conn,
		language: LanguageUnknown,
		log:      logger.NewComponent("zpl"),
	}

	lang, err := p.queryLanguage()

	if err != nil {
		return nil, err
	}

	if lang == LanguageUnknown {
		// printers with getvar disabled still answer host status
		if _, err := p.CurrentStatus(); err != nil {
			return nil, fmt.Errorf("failed to identify printer: %w", err)
		}

		lang = LanguageZPL
	}

	p.language = lang

	p.log.Debug().Str("language", string(lang)).Msg("printer stack initialized")

	return p, nil
}

// Language returns the control language detected at initialization
func (p *Printer) Language() Language {
	return p.language
}

// CurrentStatus queries and parses the printer host status
func (p *Printer) CurrentStatus() (Status, error) {
	if err := p.conn.Write([]byte(hostStatusCmd)); err != nil {
		return Status{}, err
	}

	data, err := p.conn.Read()

	if err != nil {
		return Status{}, err
	}

	if len(data) == 0 {
		return Status{}, ErrNoResponse
	}

	return ParseHostStatus(string(data))
}

// SendCommand forwards a command string to the printer as is
func (p *Printer) SendCommand(cmd string) error {
	return p.conn.Write([]byte(cmd))
}

func (p *Printer) queryLanguage() (Language, error) {
	if err := p.conn.Write([]byte(getLanguagesCmd)); err != nil {
		return LanguageUnknown, err
	}

	data, err := p.conn.Read()

	if err != nil {
		return LanguageUnknown, err
	}

	reply := strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), "\""))

	switch {
	case reply == "":
		return LanguageUnknown, nil
	case strings.Contains(reply, "zpl"):
		return LanguageZPL, nil
	case strings.Contains(reply, "line_print"):
		return LanguageLinePrint, nil
	case strings.Contains(reply, "cpcl"), strings.Contains(reply, "apl"):
		return LanguageCPCL, nil
	default:
		return LanguageUnknown, nil
	}
}
