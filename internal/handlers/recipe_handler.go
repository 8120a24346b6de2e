package handlers

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultPageSize = 10

type RecipeHandler struct {
	listing *services.ListingService
	saving  *services.SaveService
	recipes *services.RecipeService
}

func NewRecipeHandler(listing *services.ListingService, saving *services.SaveService, recipes *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{listing: listing, saving: saving, recipes: recipes}
}

// List serves GET /recipes?page=&page_size=&name=&in_description=.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	pageNum, pageSize, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	q := dto.ListQuery{
		Page:               pageNum,
		PageSize:           pageSize,
		Search:             c.Query("name"),
		IncludeDescription: c.QueryBool("in_description", false),
	}

	page, err := h.listing.ListRecipes(c.UserContext(), q, middleware.OptionalCallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *RecipeHandler) Trending(c *fiber.Ctx) error {
	items, err := h.listing.Trending(c.UserContext(), middleware.OptionalCallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *RecipeHandler) Mine(c *fiber.Ctx) error {
	pageNum, pageSize, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	page, err := h.listing.ListOwn(c.UserContext(), middleware.OptionalCallerID(c), pageNum, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *RecipeHandler) Saved(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}

	items, err := h.saving.GetSavedRecipes(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid recipe id")
	}

	recipe, err := h.listing.GetRecipe(c.UserContext(), id, middleware.OptionalCallerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

// Create accepts JSON, or a multipart form whose ingredients and directions
// fields hold JSON arrays and whose optional image part is the photo.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}

	var in dto.RecipeInput
	if c.Is("json") {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Invalid request body")
		}
	} else if err := recipeFromForm(c, &in); err != nil {
		return badRequest(c, err.Error())
	}

	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return badRequest(c, "Invalid image")
	}
	defer closeImage()

	recipe, err := h.recipes.Create(c.UserContext(), userID, in, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid recipe id")
	}

	var patch dto.RecipePatch
	if c.Is("json") {
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}
	} else if err := patchFromForm(c, &patch); err != nil {
		return badRequest(c, err.Error())
	}

	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return badRequest(c, "Invalid image")
	}
	defer closeImage()

	recipe, err := h.recipes.Update(c.UserContext(), userID, id, patch, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipe)
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid recipe id")
	}

	if err := h.recipes.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Recipe deleted successfully"})
}

func (h *RecipeHandler) Save(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid recipe id")
	}

	resp, err := h.saving.SaveRecipe(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Unsave(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}
	id, ok := idParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid recipe id")
	}

	resp, err := h.saving.UnsaveRecipe(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

type formError string

func (e formError) Error() string { return string(e) }

func recipeFromForm(c *fiber.Ctx, in *dto.RecipeInput) error {
	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")
	in.Time = c.FormValue("time")
	in.Cal = c.FormValue("cal")
	in.DishType = c.FormValue("dish_type")

	if raw := c.FormValue("poster_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return formError("Invalid poster_id")
		}
		in.PosterID = &id
	}
	if raw := c.FormValue("ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Ingredients); err != nil {
			return formError("ingredients must be a JSON array")
		}
	}
	if raw := c.FormValue("directions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Directions); err != nil {
			return formError("directions must be a JSON array")
		}
	}
	return nil
}

func patchFromForm(c *fiber.Ctx, p *dto.RecipePatch) error {
	p.Name = formValue(c, "name")
	p.Description = formValue(c, "description")
	p.Time = formValue(c, "time")
	p.Cal = formValue(c, "cal")
	p.DishType = formValue(c, "dish_type")

	if raw := formValue(c, "ingredients"); raw != nil {
		var ingredients []models.Ingredient
		if err := json.Unmarshal([]byte(*raw), &ingredients); err != nil {
			return formError("ingredients must be a JSON array")
		}
		p.Ingredients = &ingredients
	}
	if raw := formValue(c, "directions"); raw != nil {
		var directions []models.Direction
		if err := json.Unmarshal([]byte(*raw), &directions); err != nil {
			return formError("directions must be a JSON array")
		}
		p.Directions = &directions
	}
	return nil
}
