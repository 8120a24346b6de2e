package handlers

import (
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SuggestionHandler struct {
	suggestions *services.SuggestionService
}

func NewSuggestionHandler(suggestions *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

func (h *SuggestionHandler) FindByIngredients(c *fiber.Ctx) error {
	var req dto.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	recipes, err := h.suggestions.FindByIngredients(c.UserContext(), req.Search)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipes)
}

func (h *SuggestionHandler) Information(c *fiber.Ctx) error {
	info, err := h.suggestions.RecipeInformation(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(info)
}
