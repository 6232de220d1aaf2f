package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/api/dto"
	apperrors "github.com/spec-kit/volunteerhub/pkg/util"
)

// ContactHandler accepts the public contact form. Submissions are logged
// for follow-up; no mail integration exists.
type ContactHandler struct {
	logger *zap.Logger
}

// NewContactHandler constructs handler.
func NewContactHandler(logger *zap.Logger) *ContactHandler {
	return &ContactHandler{logger: logger}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	required := map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
		"subject":   req.Subject,
		"message":   req.Message,
	}
	for field, val := range required {
		if strings.TrimSpace(val) == "" {
			details[field] = field + " is required"
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("all fields are required", details)
	}

	h.logger.Info("contact form submission",
		zap.String("first_name", req.FirstName),
		zap.String("last_name", req.LastName),
		zap.String("email", req.Email),
		zap.String("subject", req.Subject),
		zap.String("message", req.Message),
	)

	return c.JSON(fiber.Map{"message": "Thank you for your message. We will get back to you soon."})
}
