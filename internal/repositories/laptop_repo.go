package repositories

import (
	"context"
	"errors"

	"laptopstore/internal/models"
)

// ErrLaptopNotFound is returned when an id matches no row.
var ErrLaptopNotFound = errors.New("not found")

// LaptopRepository defines the interface for laptop data access.
type LaptopRepository interface {
	Insert(ctx context.Context, laptop *models.Laptop) error
	GetByID(ctx context.Context, id int64) (*models.Laptop, error)
	GetAll(ctx context.Context) ([]models.Laptop, error)
	Update(ctx context.Context, laptop *models.Laptop) error
	Delete(ctx context.Context, id int64) error
}
