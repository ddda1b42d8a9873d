package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"employee-api/internal/config"
	"employee-api/internal/models"
)

// Connect opens the gorm database selected by cfg.DBDriver and migrates the
// employees table. It must not be called for the memory driver.
func Connect(cfg config.Config, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q has no database connection", cfg.DBDriver)
	}

	database, err := Open(dialector, log)
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Open wraps gorm.Open with the service's logger settings.
func Open(dialector gorm.Dialector, log *logrus.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}
	return database, nil
}

// sqlite hands out max(id)+1 unless the key is declared AUTOINCREMENT, which
// gorm's sqlite migrator never does; deleted ids would then be reused.
const sqliteEmployeesTable = `CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name varchar(200) NOT NULL,
	role varchar(200) NOT NULL
)`

func Migrate(database *gorm.DB) error {
	if database.Dialector.Name() == "sqlite" {
		if err := database.Exec(sqliteEmployeesTable).Error; err != nil {
			return fmt.Errorf("create employees table: %w", err)
		}
		return nil
	}

	if err := database.AutoMigrate(&models.Employee{}); err != nil {
		return fmt.Errorf("migrate employees: %w", err)
	}
	return nil
}
