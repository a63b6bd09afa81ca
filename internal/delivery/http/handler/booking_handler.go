package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/pkg/response"
	bookinguc "github.com/rocker1166/skilllink/internal/usecase/booking"
	paymentuc "github.com/rocker1166/skilllink/internal/usecase/payment"
)

type BookingHandler struct {
	orchestrator *bookinguc.Orchestrator
	finalizer    *paymentuc.Finalizer
}

type createBookingRequest struct {
	ProviderID  uuid.UUID `json:"provider_id"`
	ServiceName string    `json:"service_name"`
	IsSkillSwap bool      `json:"is_skill_swap"`
}

func NewBookingHandler(orchestrator *bookinguc.Orchestrator, finalizer *paymentuc.Finalizer) *BookingHandler {
	return &BookingHandler{orchestrator: orchestrator, finalizer: finalizer}
}

func (h *BookingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("", h.CreateBooking)
	r.Post("/:id/confirm-payment", h.ConfirmPayment)
}

// CreateBooking persists the booking and runs the full orchestration:
// acknowledge, derive and persist the provider notification, then either
// hand off to payment or complete the swap request. The response carries
// the structured outcome; the client only renders it.
func (h *BookingHandler) CreateBooking(c fiber.Ctx) error {
	requesterID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	requesterName, _ := c.Locals(middleware.CtxNameKey).(string)

	var req createBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	payload, err := h.orchestrator.Create(c.Context(), bookinguc.CreateInput{
		ProviderID:    req.ProviderID,
		RequesterID:   requesterID,
		RequesterName: requesterName,
		ServiceName:   req.ServiceName,
		IsSkillSwap:   req.IsSkillSwap,
	})
	if err != nil {
		if errors.Is(err, bookinguc.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	outcome := h.orchestrator.Orchestrate(c.Context(), payload, nil)
	return response.Success(c, fiber.StatusOK, response.MessageOK, outcome)
}

// ConfirmPayment is the explicit success signal from the payment step;
// nothing here infers success from silence.
func (h *BookingHandler) ConfirmPayment(c fiber.Ctx) error {
	requesterID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid booking id", nil, err)
	}

	result, err := h.finalizer.ConfirmPayment(c.Context(), requesterID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, paymentuc.ErrBookingNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "Booking not found", nil, err)
		case errors.Is(err, paymentuc.ErrForbidden):
			return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
		case errors.Is(err, paymentuc.ErrNotAwaitingPayment):
			return middleware.NewAppError(fiber.StatusConflict, "Booking not awaiting payment", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}
