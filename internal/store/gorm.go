package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"employee-api/internal/apperror"
	"employee-api/internal/models"
)

// GormStore persists employees through gorm. It works with the postgres and
// sqlite dialectors.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return employees, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (models.Employee, bool, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, false, nil
		}
		return models.Employee{}, false, fmt.Errorf("load employee: %w", err)
	}
	return employee, true, nil
}

func (s *GormStore) Create(ctx context.Context, fields Fields) (models.Employee, error) {
	employee := models.Employee{
		Name: fields.Name,
		Role: fields.Role,
	}

	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return models.Employee{}, mapDatabaseError(err)
	}
	return employee, nil
}

func (s *GormStore) Upsert(ctx context.Context, id uint, fields Fields) (models.Employee, bool, error) {
	if err := checkExplicitID(id); err != nil {
		return models.Employee{}, false, err
	}

	var employee models.Employee
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&employee, id).Error
		switch {
		case err == nil:
			employee.Name = fields.Name
			employee.Role = fields.Role
			if err := tx.Save(&employee).Error; err != nil {
				return mapDatabaseError(err)
			}
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			employee = models.Employee{
				ID:   id,
				Name: fields.Name,
				Role: fields.Role,
			}
			if err := tx.Create(&employee).Error; err != nil {
				return mapDatabaseError(err)
			}
			created = true
			return syncIDSequence(tx, id)

		default:
			return fmt.Errorf("load employee: %w", err)
		}
	})
	if err != nil {
		return models.Employee{}, false, err
	}

	return employee, created, nil
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Employee{}, id).Error; err != nil {
		return mapDatabaseError(err)
	}
	return nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}

// syncIDSequence moves the postgres serial past an explicitly inserted id and
// never backwards. sqlite keeps its AUTOINCREMENT counter in sqlite_sequence
// and updates it on explicit inserts.
func syncIDSequence(tx *gorm.DB, id uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	err := tx.Exec(
		"SELECT setval(pg_get_serial_sequence('employees', 'id'), GREATEST(?, (SELECT last_value FROM employees_id_seq)))",
		id,
	).Error
	if err != nil {
		return fmt.Errorf("sync employee id sequence: %w", err)
	}
	return nil
}

func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.New(apperror.CodeConflict, "employee with the same id already exists")
		}
		if pgErr.Code == "23502" {
			return apperror.New(apperror.CodeValidation, "name and role are required")
		}
	}
	return err
}
