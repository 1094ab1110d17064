package services_test

import (
	"context"
	"fmt"
	"testing"

	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/internal/services"
	"laptopstore/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLaptopRepository is a mock implementation of repositories.LaptopRepository
type MockLaptopRepository struct {
	mock.Mock
}

func (m *MockLaptopRepository) Insert(ctx context.Context, laptop *models.Laptop) error {
	args := m.Called(ctx, laptop)
	return args.Error(0)
}

func (m *MockLaptopRepository) GetByID(ctx context.Context, id int64) (*models.Laptop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Laptop), args.Error(1)
}

func (m *MockLaptopRepository) GetAll(ctx context.Context) ([]models.Laptop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Laptop), args.Error(1)
}

func (m *MockLaptopRepository) Update(ctx context.Context, laptop *models.Laptop) error {
	args := m.Called(ctx, laptop)
	return args.Error(0)
}

func (m *MockLaptopRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLaptopEvent(event rabbitmq.LaptopEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func eventOf(eventType string, id int64) interface{} {
	return mock.MatchedBy(func(e rabbitmq.LaptopEvent) bool {
		return e.Type == eventType && e.LaptopID == id && !e.OccurredAt.IsZero()
	})
}

func TestLaptopService_GetAllLaptops(t *testing.T) {
	mockRepo := new(MockLaptopRepository)
	service := services.NewLaptopService(mockRepo, nil)
	ctx := context.Background()

	expected := []models.Laptop{
		{ID: 1, Name: "T14", Price: "999"},
		{ID: 2, Name: "X1 Carbon", Price: "1499"},
	}
	mockRepo.On("GetAll", ctx).Return(expected, nil).Once()

	laptops, err := service.GetAllLaptops(ctx)

	assert.NoError(t, err)
	assert.Len(t, laptops, 2)
	assert.Equal(t, expected, laptops)
	mockRepo.AssertExpectations(t)
}

func TestLaptopService_GetLaptopByID(t *testing.T) {
	mockRepo := new(MockLaptopRepository)
	service := services.NewLaptopService(mockRepo, nil)
	ctx := context.Background()

	expected := &models.Laptop{ID: 1, Name: "T14", Price: "999"}

	// Test successful retrieval
	mockRepo.On("GetByID", ctx, int64(1)).Return(expected, nil).Once()
	laptop, err := service.GetLaptopByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, laptop)

	// Test laptop not found
	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, fmt.Errorf("laptop with ID 99 %w", repositories.ErrLaptopNotFound)).Once()
	laptop, err = service.GetLaptopByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrLaptopNotFound)
	assert.Nil(t, laptop)
	mockRepo.AssertExpectations(t)
}

func TestLaptopService_CreateLaptop(t *testing.T) {
	mockRepo := new(MockLaptopRepository)
	mockMQ := new(MockPublisher)
	service := services.NewLaptopService(mockRepo, mockMQ)
	ctx := context.Background()

	newLaptop := &models.Laptop{Name: "T14", Price: "999"}

	// Test successful creation publishes an event with the assigned id
	mockRepo.On("Insert", ctx, newLaptop).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Laptop).ID = 5
	}).Return(nil).Once()
	mockMQ.On("PublishLaptopEvent", eventOf(rabbitmq.LaptopCreated, 5)).Return(nil).Once()
	err := service.CreateLaptop(ctx, newLaptop)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), newLaptop.ID)

	// Test creation failure publishes nothing
	failing := &models.Laptop{Name: "broken"}
	mockRepo.On("Insert", ctx, failing).Return(fmt.Errorf("database error")).Once()
	err = service.CreateLaptop(ctx, failing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestLaptopService_PublishFailureDoesNotFailWrite(t *testing.T) {
	mockRepo := new(MockLaptopRepository)
	mockMQ := new(MockPublisher)
	service := services.NewLaptopService(mockRepo, mockMQ)
	ctx := context.Background()

	laptop := &models.Laptop{ID: 3, Name: "T14"}
	mockRepo.On("Update", ctx, laptop).Return(nil).Once()
	mockMQ.On("PublishLaptopEvent", eventOf(rabbitmq.LaptopUpdated, 3)).Return(fmt.Errorf("channel closed")).Once()

	assert.NoError(t, service.UpdateLaptop(ctx, laptop))
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestLaptopService_UpdateLaptop(t *testing.T) {
	mockRepo := new(MockLaptopRepository)
	service := services.NewLaptopService(mockRepo, nil)
	ctx := context.Background()

	updated := &models.Laptop{ID: 1, Name: "T14 Gen 4", Price: "1099"}

	// Test successful update
	mockRepo.On("Update", ctx, updated).Return(nil).Once()
	err := service.UpdateLaptop(ctx, updated)
	assert.NoError(t, err)

	// Test update failure (laptop not found in repo)
	missing := &models.Laptop{ID: 99, Name: "NonExistent"}
	mockRepo.On("Update", ctx, missing).Return(fmt.Errorf("laptop with ID 99 %w for update", repositories.ErrLaptopNotFound)).Once()
	err = service.UpdateLaptop(ctx, missing)
	assert.ErrorIs(t, err, repositories.ErrLaptopNotFound)
	assert.Contains(t, err.Error(), "not found for update")
	mockRepo.AssertExpectations(t)
}

func TestLaptopService_DeleteLaptop(t *testing.T) {
	mockRepo := new(MockLaptopRepository)
	mockMQ := new(MockPublisher)
	service := services.NewLaptopService(mockRepo, mockMQ)
	ctx := context.Background()

	// Test successful deletion
	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	mockMQ.On("PublishLaptopEvent", eventOf(rabbitmq.LaptopDeleted, 1)).Return(nil).Once()
	err := service.DeleteLaptop(ctx, 1)
	assert.NoError(t, err)

	// Test deletion failure (laptop not found)
	mockRepo.On("Delete", ctx, int64(99)).Return(fmt.Errorf("laptop with ID 99 %w for deletion", repositories.ErrLaptopNotFound)).Once()
	err = service.DeleteLaptop(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrLaptopNotFound)
	assert.Contains(t, err.Error(), "not found for deletion")

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}
