package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"laptopstore/internal/models"
)

// MockLaptopRepository is an in-memory implementation of LaptopRepository.
// IDs are assigned sequentially starting at 1, like a SERIAL column.
type MockLaptopRepository struct {
	laptops map[int64]models.Laptop
	nextID  int64
	mu      sync.RWMutex
}

// NewMockLaptopRepository creates a new instance of MockLaptopRepository.
func NewMockLaptopRepository() *MockLaptopRepository {
	return &MockLaptopRepository{
		laptops: make(map[int64]models.Laptop),
		nextID:  1,
	}
}

// Insert adds a new laptop and assigns its ID.
func (r *MockLaptopRepository) Insert(_ context.Context, laptop *models.Laptop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	laptop.ID = r.nextID
	r.nextID++
	r.laptops[laptop.ID] = *laptop
	return nil
}

// GetByID returns a laptop by its ID.
func (r *MockLaptopRepository) GetByID(_ context.Context, id int64) (*models.Laptop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	laptop, ok := r.laptops[id]
	if !ok {
		return nil, fmt.Errorf("laptop with ID %d %w", id, ErrLaptopNotFound)
	}
	return &laptop, nil
}

// GetAll returns all laptops ordered by ID.
func (r *MockLaptopRepository) GetAll(_ context.Context) ([]models.Laptop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	laptopList := make([]models.Laptop, 0, len(r.laptops))
	for _, l := range r.laptops {
		laptopList = append(laptopList, l)
	}
	sort.Slice(laptopList, func(i, j int) bool { return laptopList[i].ID < laptopList[j].ID })
	return laptopList, nil
}

// Update replaces an existing laptop.
func (r *MockLaptopRepository) Update(_ context.Context, laptop *models.Laptop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.laptops[laptop.ID]; !ok {
		return fmt.Errorf("laptop with ID %d %w for update", laptop.ID, ErrLaptopNotFound)
	}
	r.laptops[laptop.ID] = *laptop
	return nil
}

// Delete removes a laptop by its ID.
func (r *MockLaptopRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.laptops[id]; !ok {
		return fmt.Errorf("laptop with ID %d %w for deletion", id, ErrLaptopNotFound)
	}
	delete(r.laptops, id)
	return nil
}
