package printer_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/zlink/internal/exception"
	mock_printer "github.com/robgonnella/zlink/internal/mock/printer"
	"github.com/robgonnella/zlink/internal/printer"
	"github.com/stretchr/testify/assert"
)

func TestPrinterService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockRepo := mock_printer.NewMockRepo(ctrl)

	service := printer.NewService(mockRepo)

	testPrinter := &printer.Printer{
		ID:        printer.ID(printer.TransportBluetooth, "ZQ520"),
		Transport: printer.TransportBluetooth,
		Handle:    "ZQ520",
	}

	t.Run("ids are stable per transport and handle", func(st *testing.T) {
		assert.Equal(
			st,
			printer.ID(printer.TransportWifi, "10.0.0.5"),
			printer.ID(printer.TransportWifi, "10.0.0.5"),
		)
		assert.NotEqual(
			st,
			printer.ID(printer.TransportWifi, "ZQ520"),
			printer.ID(printer.TransportBluetooth, "ZQ520"),
		)
	})

	t.Run("gets all printers", func(st *testing.T) {
		expected := []*printer.Printer{testPrinter}

		mockRepo.EXPECT().GetAllPrinters().Return(expected, nil)

		found, err := service.GetAll()

		assert.NoError(st, err)
		assert.Equal(st, expected, found)
	})

	t.Run("records new printers", func(st *testing.T) {
		mockRepo.EXPECT().
			GetPrinterByID(testPrinter.ID).
			Return(nil, exception.ErrRecordNotFound)

		mockRepo.EXPECT().
			AddPrinter(gomock.Any()).
			DoAndReturn(func(p *printer.Printer) (*printer.Printer, error) {
				assert.Equal(st, testPrinter.ID, p.ID)
				assert.Equal(st, "ZQ520", p.Handle)
				assert.Equal(st, printer.TransportBluetooth, p.Transport)
				assert.False(st, p.FirstSeen.IsZero())
				assert.Equal(st, p.FirstSeen, p.LastSeen)
				return p, nil
			})

		err := service.RecordDiscovery(printer.TransportBluetooth, []string{"ZQ520", ""})

		assert.NoError(st, err)
	})

	t.Run("refreshes known printers", func(st *testing.T) {
		known := *testPrinter

		mockRepo.EXPECT().GetPrinterByID(testPrinter.ID).Return(&known, nil)
		mockRepo.EXPECT().
			UpdatePrinter(gomock.Any()).
			DoAndReturn(func(p *printer.Printer) (*printer.Printer, error) {
				assert.False(st, p.LastSeen.IsZero())
				return p, nil
			})

		err := service.RecordDiscovery(printer.TransportBluetooth, []string{"ZQ520"})

		assert.NoError(st, err)
	})

	t.Run("returns repo errors", func(st *testing.T) {
		mockRepo.EXPECT().
			GetPrinterByID(gomock.Any()).
			Return(nil, errors.New("mock repo error"))

		err := service.RecordDiscovery(printer.TransportWifi, []string{"10.0.0.5"})

		assert.Error(st, err)
	})

	t.Run("stores device info", func(st *testing.T) {
		known := *testPrinter

		mockRepo.EXPECT().GetPrinterByID(testPrinter.ID).Return(&known, nil).Times(2)
		mockRepo.EXPECT().
			UpdatePrinter(gomock.Any()).
			Return(&known, nil)
		mockRepo.EXPECT().
			UpdatePrinter(gomock.Any()).
			DoAndReturn(func(p *printer.Printer) (*printer.Printer, error) {
				assert.JSONEq(st, `{"model":"ZQ520"}`, string(p.Info))
				return p, nil
			})

		err := service.SetInfo(
			printer.TransportBluetooth,
			"ZQ520",
			map[string]string{"model": "ZQ520"},
		)

		assert.NoError(st, err)
	})

	t.Run("removes printer", func(st *testing.T) {
		mockRepo.EXPECT().RemovePrinter(testPrinter.ID).Return(nil)

		err := service.Remove(testPrinter.ID)

		assert.NoError(st, err)
	})
}
