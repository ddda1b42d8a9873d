package service

import "context"

type EmployeeInput struct {
	Name string
	Role string
}

type EmployeeDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Manager interface {
	ListEmployees(ctx context.Context) ([]EmployeeDTO, error)
	CreateEmployee(ctx context.Context, input EmployeeInput) (EmployeeDTO, error)
	GetEmployee(ctx context.Context, employeeID uint) (EmployeeDTO, error)
	ReplaceEmployee(ctx context.Context, employeeID uint, input EmployeeInput) (EmployeeDTO, error)
	DeleteEmployee(ctx context.Context, employeeID uint) error
}
