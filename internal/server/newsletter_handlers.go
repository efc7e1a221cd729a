package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// NewsletterSignup handles POST /api/newsletter/signup
func (s *Server) NewsletterSignup(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.subscriberService.Signup(c.Context(), req.Email)
	if err != nil {
		return mapServiceError(c, err)
	}

	// A repeat signup is a success, not an error.
	if !res.Created {
		return c.JSON(fiber.Map{
			"message": "Email already subscribed",
			"email":   res.Subscriber.Email,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Successfully subscribed!",
		"email":   res.Subscriber.Email,
	})
}

// SendNewsletter handles POST /api/newsletter/send
func (s *Server) SendNewsletter(c *fiber.Ctx) error {
	var req struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.newsletterService.SendToAll(c.Context(), req.Subject, req.Content)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(report)
}

// GetSubscribers handles GET /api/newsletter/subscribers
func (s *Server) GetSubscribers(c *fiber.Ctx) error {
	subscribers, err := s.subscriberService.ListSubscribers(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(subscribers)
}

// Unsubscribe handles DELETE /api/newsletter/unsubscribe/:id
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.subscriberService.Unsubscribe(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unsubscribed successfully"})
}
