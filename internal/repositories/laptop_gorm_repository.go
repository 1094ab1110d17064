package repositories

import (
	"context"
	"errors"
	"fmt"

	"laptopstore/internal/models"

	"gorm.io/gorm"
)

// GORMLaptopRepository is a GORM implementation of LaptopRepository.
type GORMLaptopRepository struct {
	db *gorm.DB
}

// NewGORMLaptopRepository creates a new instance of GORMLaptopRepository.
func NewGORMLaptopRepository(db *gorm.DB) *GORMLaptopRepository {
	return &GORMLaptopRepository{
		db: db,
	}
}

// Insert creates a new laptop row. The store assigns laptop.ID.
func (r *GORMLaptopRepository) Insert(ctx context.Context, laptop *models.Laptop) error {
	laptop.ID = 0
	if err := r.db.WithContext(ctx).Create(laptop).Error; err != nil {
		return fmt.Errorf("failed to create laptop: %w", err)
	}
	return nil
}

// GetByID retrieves a single laptop by its ID.
func (r *GORMLaptopRepository) GetByID(ctx context.Context, id int64) (*models.Laptop, error) {
	var laptop models.Laptop
	if err := r.db.WithContext(ctx).First(&laptop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("laptop with ID %d %w", id, ErrLaptopNotFound)
		}
		return nil, fmt.Errorf("failed to get laptop by ID %d: %w", id, err)
	}
	return &laptop, nil
}

// GetAll retrieves all laptops ordered by id.
func (r *GORMLaptopRepository) GetAll(ctx context.Context) ([]models.Laptop, error) {
	laptops := make([]models.Laptop, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&laptops).Error; err != nil {
		return nil, fmt.Errorf("failed to get all laptops: %w", err)
	}
	return laptops, nil
}

// Update replaces every text column of the laptop with the given ID.
func (r *GORMLaptopRepository) Update(ctx context.Context, laptop *models.Laptop) error {
	// A map keeps empty strings in the SET clause; Updates(struct) would skip them.
	res := r.db.WithContext(ctx).Model(&models.Laptop{}).Where("id = ?", laptop.ID).Updates(map[string]interface{}{
		"name":        laptop.Name,
		"description": laptop.Description,
		"price":       laptop.Price,
		"processor":   laptop.Processor,
		"ram":         laptop.RAM,
		"storage":     laptop.Storage,
		"display":     laptop.Display,
		"os":          laptop.OS,
		"graphics":    laptop.Graphics,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update laptop: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("laptop with ID %d %w for update", laptop.ID, ErrLaptopNotFound)
	}
	return nil
}

// Delete deletes a laptop by its ID.
func (r *GORMLaptopRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Laptop{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete laptop: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("laptop with ID %d %w for deletion", id, ErrLaptopNotFound)
	}
	return nil
}
