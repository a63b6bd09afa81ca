package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rocker1166/skilllink/internal/delivery/http/dto"
	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/pkg/response"
	notificationuc "github.com/rocker1166/skilllink/internal/usecase/notification"
)

type NotificationHandler struct {
	uc *notificationuc.Service
}

func NewNotificationHandler(uc *notificationuc.Service) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("", h.List)
	r.Post("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NotificationResponses(items))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid notification id", nil, err)
	}

	if err := h.uc.MarkRead(c.Context(), userID, id); err != nil {
		if errors.Is(err, notificationuc.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
