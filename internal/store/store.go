// Package store holds employee records and assigns their ids.
package store

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"employee-api/internal/apperror"
	"employee-api/internal/config"
	"employee-api/internal/db"
	"employee-api/internal/models"
)

// MaxID is the largest employee id any backend accepts; it is the upper
// bound of the postgres bigserial and sqlite integer key.
const MaxID uint64 = math.MaxInt64

// Fields are the client-editable attributes of an employee.
type Fields struct {
	Name string
	Role string
}

// Store is implemented by MemoryStore and GormStore.
//
// FindByID reports absence through its bool result rather than an error;
// callers decide how a missing employee is surfaced. Upsert reports whether
// the record was created.
type Store interface {
	List(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, id uint) (models.Employee, bool, error)
	Create(ctx context.Context, fields Fields) (models.Employee, error)
	Upsert(ctx context.Context, id uint, fields Fields) (models.Employee, bool, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

func checkExplicitID(id uint) error {
	if uint64(id) > MaxID {
		return apperror.New(apperror.CodeValidation, fmt.Sprintf("employee id must not exceed %d", MaxID))
	}
	return nil
}

// Open returns the store named by cfg.DBDriver.
func Open(cfg config.Config, log *logrus.Logger) (Store, error) {
	if cfg.DBDriver == config.DriverMemory {
		return NewMemoryStore(), nil
	}

	database, err := db.Connect(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect %s store: %w", cfg.DBDriver, err)
	}
	return NewGormStore(database), nil
}
