package services

import (
	"context"
	"log"
	"time"

	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/pkg/rabbitmq"
)

// EventPublisher publishes laptop change events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	PublishLaptopEvent(event rabbitmq.LaptopEvent) error
}

// LaptopService handles business logic related to laptops.
type LaptopService struct {
	repo      repositories.LaptopRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewLaptopService creates a new LaptopService. publisher may be nil.
func NewLaptopService(repo repositories.LaptopRepository, publisher EventPublisher) *LaptopService {
	return &LaptopService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetAllLaptops retrieves all laptops.
func (s *LaptopService) GetAllLaptops(ctx context.Context) ([]models.Laptop, error) {
	return s.repo.GetAll(ctx)
}

// GetLaptopByID retrieves a single laptop by its ID.
func (s *LaptopService) GetLaptopByID(ctx context.Context, id int64) (*models.Laptop, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateLaptop stores a new laptop; laptop.ID is set on success.
func (s *LaptopService) CreateLaptop(ctx context.Context, laptop *models.Laptop) error {
	if err := s.repo.Insert(ctx, laptop); err != nil {
		return err
	}
	s.publish(rabbitmq.LaptopCreated, laptop.ID)
	return nil
}

// UpdateLaptop replaces every field of an existing laptop.
func (s *LaptopService) UpdateLaptop(ctx context.Context, laptop *models.Laptop) error {
	if err := s.repo.Update(ctx, laptop); err != nil {
		return err
	}
	s.publish(rabbitmq.LaptopUpdated, laptop.ID)
	return nil
}

// DeleteLaptop deletes a laptop by its ID.
func (s *LaptopService) DeleteLaptop(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(rabbitmq.LaptopDeleted, id)
	return nil
}

// publish never fails the caller; the write has already been committed.
func (s *LaptopService) publish(eventType string, id int64) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.LaptopEvent{Type: eventType, LaptopID: id, OccurredAt: s.now().UTC()}
	if err := s.publisher.PublishLaptopEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for laptop %d: %v", eventType, id, err)
	}
}
