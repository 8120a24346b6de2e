package handlers

import (
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PosterHandler struct {
	posters *services.PosterService
	recipes *services.RecipeService
}

func NewPosterHandler(posters *services.PosterService, recipes *services.RecipeService) *PosterHandler {
	return &PosterHandler{posters: posters, recipes: recipes}
}

func (h *PosterHandler) Create(c *fiber.Ctx) error {
	var in dto.PosterInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return badRequest(c, "Invalid image")
	}
	defer closeImage()

	poster, err := h.posters.Create(c.UserContext(), in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(poster)
}

func (h *PosterHandler) List(c *fiber.Ctx) error {
	posters, err := h.posters.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posters)
}

func (h *PosterHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid poster id")
	}

	poster, err := h.posters.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(poster)
}

// Recipe returns the detail recipe behind a poster.
func (h *PosterHandler) Recipe(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid poster id")
	}

	resp, err := h.recipes.RecipeForPoster(c.UserContext(), id, middleware.OptionalCallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

type ArticleHandler struct {
	articles *services.ArticleService
}

func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.ArticleInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return badRequest(c, "Invalid image")
	}
	defer closeImage()

	article, err := h.articles.Create(c.UserContext(), in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

func (h *ArticleHandler) List(c *fiber.Ctx) error {
	articles, err := h.articles.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articles)
}

func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid article id")
	}

	article, err := h.articles.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(article)
}
