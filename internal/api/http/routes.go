package httpapi

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weatherinsight/internal/answer"
)

var validate = validator.New()

// Composer is the question-answering pipeline behind the API.
// Satisfied by *answer.Composer.
type Composer interface {
	Compose(ctx context.Context, question string) answer.Answer
}

// questionRequest is the body of POST /api/v1/question.
type questionRequest struct {
	Question string `json:"question" validate:"required"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, composer Composer) {
	v1 := app.Group("/api/v1")

	v1.Post("/question", func(c *fiber.Ctx) error {
		var req questionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ans := composer.Compose(c.Context(), req.Question)

		text := ans.Text
		if text == "" {
			text = "Sorry, we could not generate a weather answer at this time."
		}

		return c.JSON(fiber.Map{
			"answer":  text,
			"success": true,
		})
	})
}
