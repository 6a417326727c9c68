package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"equipmenttracker.dev/launcher/internal/history"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var errNotOpen = errors.New("run history database is not open")

type SQLiteDelegate struct {
	Path     string
	database *gorm.DB
}

func (sqliteDelegate *SQLiteDelegate) Open() (err error) {
	if directory := filepath.Dir(sqliteDelegate.Path); directory != "." {
		if err = os.MkdirAll(directory, 0755); err != nil {
			return
		}
	}
	dialector := sqlite.Open(sqliteDelegate.Path)
	sqliteDelegate.database, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	return
}

func (sqliteDelegate *SQLiteDelegate) Migrate() (err error) {
	if sqliteDelegate.database == nil {
		return errNotOpen
	}
	return sqliteDelegate.database.AutoMigrate(&history.Run{})
}

func (sqliteDelegate *SQLiteDelegate) Close() (err error) {
	if sqliteDelegate.database == nil {
		return
	}
	var database *sql.DB
	if database, err = sqliteDelegate.database.DB(); err != nil {
		return
	}
	if err = database.Close(); err != nil {
		return
	}
	sqliteDelegate.database = nil
	return
}

func (sqliteDelegate *SQLiteDelegate) Create(value interface{}) error {
	if sqliteDelegate.database == nil {
		return errNotOpen
	}
	if result := sqliteDelegate.database.Create(value); result.Error != nil {
		return result.Error
	}
	return nil
}

func (sqliteDelegate *SQLiteDelegate) CreateOrUpdate(value interface{}) error {
	if sqliteDelegate.database == nil {
		return errNotOpen
	}
	if result := sqliteDelegate.database.Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(value); result.Error != nil {
		return result.Error
	}
	return nil
}

func (sqliteDelegate *SQLiteDelegate) List(entities interface{}) error {
	if sqliteDelegate.database == nil {
		return errNotOpen
	}
	if result := sqliteDelegate.database.Order("started_at").Find(entities); result.Error != nil {
		return result.Error
	}
	return nil
}
