package printer

import (
	"errors"

	"github.com/robgonnella/zlink/internal/exception"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteDatabase opens and migrates the sqlite database registered with
// viper as "database-file"
func NewSqliteDatabase() (*gorm.DB, error) {
	dbFile, ok := viper.Get("database-file").(string)

	if !ok {
		return nil, errors.New("failed to find database file path config")
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Printer{}); err != nil {
		return nil, err
	}

	return db, nil
}

// NewSqliteRepo returns a new printer repo backed by db
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// GetAllPrinters returns all printers from the database
func (r *SqliteRepo) GetAllPrinters() ([]*Printer, error) {
	printers := []*Printer{}

	if result := r.db.Order("last_seen desc").Find(&printers); result.Error != nil {
		return nil, result.Error
	}

	return printers, nil
}

// GetPrinterByID returns a printer from the database
func (r *SqliteRepo) GetPrinterByID(id string) (*Printer, error) {
	printer := Printer{}

	if result := r.db.First(&printer, "id = ?", id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return &printer, nil
}

// AddPrinter creates a new printer record
func (r *SqliteRepo) AddPrinter(printer *Printer) (*Printer, error) {
	if printer.ID == "" {
		return nil, errors.New("printer id cannot be empty")
	}

	if result := r.db.Create(printer); result.Error != nil {
		return nil, result.Error
	}

	return printer, nil
}

// UpdatePrinter saves every field of an existing printer record
func (r *SqliteRepo) UpdatePrinter(printer *Printer) (*Printer, error) {
	if printer.ID == "" {
		return nil, errors.New("printer id cannot be empty")
	}

	if result := r.db.Save(printer); result.Error != nil {
		return nil, result.Error
	}

	return printer, nil
}

// RemovePrinter deletes a printer record
func (r *SqliteRepo) RemovePrinter(id string) error {
	if id == "" {
		return errors.New("printer id cannot be empty")
	}

	return r.db.Delete(&Printer{ID: id}).Error
}
