package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/pkg/response"
	reviewuc "github.com/rocker1166/skilllink/internal/usecase/review"
)

type ReviewHandler struct {
	uc *reviewuc.Service
}

type createReviewRequest struct {
	ProviderID uuid.UUID `json:"provider_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

func NewReviewHandler(uc *reviewuc.Service) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("", h.CreateReview)
}

func (h *ReviewHandler) CreateReview(c fiber.Ctx) error {
	reviewerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), reviewuc.CreateInput{
		ProviderID: req.ProviderID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviewuc.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		case errors.Is(err, reviewuc.ErrProviderNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Provider not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, created)
}
