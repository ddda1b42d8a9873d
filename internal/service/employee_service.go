package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"employee-api/internal/apperror"
	"employee-api/internal/models"
	"employee-api/internal/store"
)

type EmployeeService struct {
	store  store.Store
	logger *logrus.Logger
}

func NewEmployeeService(s store.Store, logger *logrus.Logger) *EmployeeService {
	return &EmployeeService{
		store:  s,
		logger: logger,
	}
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]EmployeeDTO, error) {
	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToDTO(employee))
	}
	return result, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (EmployeeDTO, error) {
	fields, err := normalizeInput(input)
	if err != nil {
		return EmployeeDTO{}, err
	}

	employee, err := s.store.Create(ctx, fields)
	if err != nil {
		return EmployeeDTO{}, err
	}

	s.logger.WithField("employee_id", employee.ID).Debug("employee created")
	return employeeToDTO(employee), nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID uint) (EmployeeDTO, error) {
	employee, ok, err := s.store.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeDTO{}, err
	}
	if !ok {
		return EmployeeDTO{}, apperror.NotFound(employeeID)
	}
	return employeeToDTO(employee), nil
}

// ReplaceEmployee overwrites name and role of the employee, creating it
// under employeeID when it does not exist yet.
func (s *EmployeeService) ReplaceEmployee(ctx context.Context, employeeID uint, input EmployeeInput) (EmployeeDTO, error) {
	fields, err := normalizeInput(input)
	if err != nil {
		return EmployeeDTO{}, err
	}

	employee, created, err := s.store.Upsert(ctx, employeeID, fields)
	if err != nil {
		return EmployeeDTO{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"created":     created,
	}).Debug("employee replaced")
	return employeeToDTO(employee), nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID uint) error {
	return s.store.Delete(ctx, employeeID)
}

var seedEmployees = []EmployeeInput{
	{Name: "Bilbo Baggins", Role: "burglar"},
	{Name: "Frodo Baggins", Role: "thief"},
}

// Seed preloads the sample employees into an empty store.
func (s *EmployeeService) Seed(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.WithField("count", count).Info("store not empty, skipping preload")
		return nil
	}

	for _, input := range seedEmployees {
		employee, err := s.CreateEmployee(ctx, input)
		if err != nil {
			return fmt.Errorf("preload %s: %w", input.Name, err)
		}
		s.logger.WithFields(logrus.Fields{
			"id":   employee.ID,
			"name": employee.Name,
			"role": employee.Role,
		}).Info("preloading employee")
	}
	return nil
}

func employeeToDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:   employee.ID,
		Name: employee.Name,
		Role: employee.Role,
	}
}

func normalizeInput(input EmployeeInput) (store.Fields, error) {
	name, err := normalizeRequiredString(input.Name, "name")
	if err != nil {
		return store.Fields{}, err
	}

	role, err := normalizeRequiredString(input.Role, "role")
	if err != nil {
		return store.Fields{}, err
	}

	return store.Fields{Name: name, Role: role}, nil
}

func normalizeRequiredString(raw string, field string) (string, error) {
	value := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(value)
	if length < 1 || length > 200 {
		return "", apperror.New(apperror.CodeValidation, fmt.Sprintf("%s length must be in range 1..200", field))
	}
	return value, nil
}
