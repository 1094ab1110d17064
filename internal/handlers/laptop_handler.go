package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response bodies.
const (
	msgCreated       = "Laptop created"
	msgUpdated       = "Laptop updated"
	msgDeleted       = "Laptop deleted"
	msgNotFound      = "Laptop not found"
	msgInternalError = "Internal error"
)

// LaptopHandler handles HTTP requests for laptops.
type LaptopHandler struct {
	service  *services.LaptopService
	validate *validator.Validate
}

// NewLaptopHandler creates a new LaptopHandler.
func NewLaptopHandler(service *services.LaptopService) *LaptopHandler {
	return &LaptopHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the laptop routes with the Fiber app.
func (h *LaptopHandler) RegisterRoutes(router fiber.Router) {
	laptopRoutes := router.Group("/laptops")
	laptopRoutes.Post("/", h.HandleCreateLaptop)
	laptopRoutes.Get("/", h.HandleGetLaptops)
	laptopRoutes.Get("/:id", h.HandleGetLaptopByID)
	laptopRoutes.Put("/:id", h.HandleUpdateLaptop)
	laptopRoutes.Delete("/:id", h.HandleDeleteLaptop)
}

// parseID reads the :id route segment as a base-10 integer.
func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid laptop id %q: %w", raw, err)
	}
	return id, nil
}

// parseBody decodes the JSON body and checks every field is present.
// The body is read as JSON whatever the Content-Type header says.
func (h *LaptopHandler) parseBody(c *fiber.Ctx) (models.LaptopInput, error) {
	var input models.LaptopInput
	if err := c.App().Config().JSONDecoder(c.Body(), &input); err != nil {
		return input, fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(input); err != nil {
		return input, fmt.Errorf("invalid laptop: %w", err)
	}
	return input, nil
}

// internalError logs err and answers with a generic 500.
func internalError(c *fiber.Ctx, action string, err error) error {
	log.Printf("Error %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).SendString(msgInternalError)
}

// storeError maps a service error to 404 or 500.
func storeError(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, repositories.ErrLaptopNotFound) {
		log.Printf("Error %s: %v", action, err)
		return c.Status(fiber.StatusNotFound).SendString(msgNotFound)
	}
	return internalError(c, action, err)
}

// HandleCreateLaptop creates a new laptop. Any failure is a 500.
func (h *LaptopHandler) HandleCreateLaptop(c *fiber.Ctx) error {
	input, err := h.parseBody(c)
	if err != nil {
		return internalError(c, "parsing create request", err)
	}

	laptop := input.ToLaptop(0)
	if err := h.service.CreateLaptop(c.UserContext(), &laptop); err != nil {
		return internalError(c, "creating laptop", err)
	}

	c.Location(fmt.Sprintf("/laptops/%d", laptop.ID))
	return c.Status(fiber.StatusOK).SendString(msgCreated)
}

// HandleGetLaptops retrieves all laptops; an empty table yields [].
func (h *LaptopHandler) HandleGetLaptops(c *fiber.Ctx) error {
	laptops, err := h.service.GetAllLaptops(c.UserContext())
	if err != nil {
		return internalError(c, "getting all laptops", err)
	}
	if laptops == nil {
		laptops = []models.Laptop{}
	}
	return c.JSON(laptops)
}

// HandleGetLaptopByID retrieves a single laptop by its ID.
func (h *LaptopHandler) HandleGetLaptopByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return internalError(c, "parsing laptop id", err)
	}

	laptop, err := h.service.GetLaptopByID(c.UserContext(), id)
	if err != nil {
		return storeError(c, fmt.Sprintf("getting laptop %d", id), err)
	}
	return c.JSON(laptop)
}

// HandleUpdateLaptop replaces every field of the laptop named by the path id.
// An id in the body is ignored.
func (h *LaptopHandler) HandleUpdateLaptop(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return internalError(c, "parsing laptop id", err)
	}
	input, err := h.parseBody(c)
	if err != nil {
		return internalError(c, "parsing update request", err)
	}

	laptop := input.ToLaptop(id)
	if err := h.service.UpdateLaptop(c.UserContext(), &laptop); err != nil {
		return storeError(c, fmt.Sprintf("updating laptop %d", id), err)
	}
	return c.SendString(msgUpdated)
}

// HandleDeleteLaptop deletes a laptop by its ID.
func (h *LaptopHandler) HandleDeleteLaptop(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return internalError(c, "parsing laptop id", err)
	}

	if err := h.service.DeleteLaptop(c.UserContext(), id); err != nil {
		return storeError(c, fmt.Sprintf("deleting laptop %d", id), err)
	}
	return c.SendString(msgDeleted)
}
