package store

import (
	"context"
	"sync"

	"employee-api/internal/apperror"
	"employee-api/internal/models"
)

// MemoryStore keeps employees in process memory. Records are returned by
// value so no caller shares state with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[uint]models.Employee
	order  []uint
	lastID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[uint]models.Employee)}
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]models.Employee, 0, len(s.order))
	for _, id := range s.order {
		employees = append(employees, s.items[id])
	}
	return employees, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id uint) (models.Employee, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.items[id]
	return employee, ok, nil
}

func (s *MemoryStore) Create(ctx context.Context, fields Fields) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uint64(s.lastID) >= MaxID {
		return models.Employee{}, apperror.New(apperror.CodeConflict, "employee id space exhausted")
	}
	s.lastID++
	return s.insertLocked(s.lastID, fields), nil
}

func (s *MemoryStore) Upsert(ctx context.Context, id uint, fields Fields) (models.Employee, bool, error) {
	if err := checkExplicitID(id); err != nil {
		return models.Employee{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if employee, ok := s.items[id]; ok {
		employee.Name = fields.Name
		employee.Role = fields.Role
		s.items[id] = employee
		return employee, false, nil
	}

	// generated ids must never land on an explicitly chosen one
	if id > s.lastID {
		s.lastID = id
	}
	return s.insertLocked(id, fields), true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

func (s *MemoryStore) insertLocked(id uint, fields Fields) models.Employee {
	employee := models.Employee{
		ID:   id,
		Name: fields.Name,
		Role: fields.Role,
	}
	s.items[id] = employee
	s.order = append(s.order, id)
	return employee
}
