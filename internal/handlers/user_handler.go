package handlers

import (
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}

	user, err := h.authService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMe takes a multipart form with optional name, profile_image and
// cover_image parts.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}

	profile, closeProfile, err := formImage(c, "profile_image")
	if err != nil {
		return badRequest(c, "Invalid profile image")
	}
	defer closeProfile()
	cover, closeCover, err := formImage(c, "cover_image")
	if err != nil {
		return badRequest(c, "Invalid cover image")
	}
	defer closeCover()

	upd := services.ProfileUpdate{
		Name:         formValue(c, "name"),
		ProfileImage: profile,
		CoverImage:   cover,
	}
	if upd.Name == nil && c.Is("json") {
		var body struct {
			Name *string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
		upd.Name = body.Name
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), userID, upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, services.ErrLoginRequired)
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.DeleteAccount(c.UserContext(), userID, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Account deleted successfully"})
}
