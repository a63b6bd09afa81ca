package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/delivery/http/dto"
	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/pkg/response"
	"github.com/rocker1166/skilllink/internal/usecase/profile"
	reviewuc "github.com/rocker1166/skilllink/internal/usecase/review"
)

type ProviderHandler struct {
	profiles *profile.Service
	reviews  *reviewuc.Service
}

func NewProviderHandler(profiles *profile.Service, reviews *reviewuc.Service) *ProviderHandler {
	return &ProviderHandler{profiles: profiles, reviews: reviews}
}

func (h *ProviderHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id", h.GetProvider)
	r.Get("/:id/reviews", h.ListReviews)
}

// GetProvider serves the provider page view. A missing provider is a
// terminal 404 whose payload names the recovery route, matching the page's
// "Provider not found / Back to Explore" state.
func (h *ProviderHandler) GetProvider(c fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid provider id", nil, err)
	}

	var viewerID *uuid.UUID
	if id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); ok {
		viewerID = &id
	}

	view, err := h.profiles.LoadProvider(c.Context(), providerID, viewerID)
	if err != nil {
		if errors.Is(err, profile.ErrProviderNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Provider not found",
				map[string]string{"recovery": "/explore"}, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProviderView(view))
}

func (h *ProviderHandler) ListReviews(c fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid provider id", nil, err)
	}

	reviews, err := h.reviews.ListByProvider(c.Context(), providerID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ReviewResponses(reviews))
}
