package middleware

import "github.com/gofiber/fiber/v2"

// StaticCORS sets a fixed Access-Control-Allow-Origin header on every response.
func StaticCORS(origin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		return c.Next()
	}
}

// NotFound answers any request no route matched. Register it last.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("404 not found")
	}
}
