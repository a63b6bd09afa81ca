package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rocker1166/skilllink/internal/delivery/http/middleware"
	"github.com/rocker1166/skilllink/internal/pkg/response"
	ucauth "github.com/rocker1166/skilllink/internal/usecase/auth"
)

type AuthHandler struct {
	uc *ucauth.Service
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type magicLinkRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to"`
}

func NewAuthHandler(uc *ucauth.Service) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/magic-link", h.RequestMagicLink)
	r.Get("/magic-link/consume", h.ConsumeMagicLink)
	r.Get("/callback-error", h.CallbackError)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return mapAuthError(err)
	}

	data := map[string]any{
		"user":          usr,
		"access_token":  tokens.Access,
		"refresh_token": tokens.Refresh,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthError(err)
	}

	data := map[string]any{
		"user":          usr,
		"access_token":  tokens.Access,
		"refresh_token": tokens.Refresh,
		"ack": map[string]string{
			"title":       "Welcome back!",
			"description": "You have successfully logged in.",
		},
		"redirect_to": "/dashboard",
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, ucauth.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, ucauth.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	data := map[string]any{
		"access_token":  tokens.Access,
		"refresh_token": tokens.Refresh,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// RequestMagicLink acknowledges dispatch, never delivery, and answers the
// same way whether or not the address has an account.
func (h *AuthHandler) RequestMagicLink(c fiber.Ctx) error {
	var req magicLinkRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RequestMagicLink(c.Context(), req.Email, req.RedirectTo); err != nil {
		return mapAuthError(err)
	}

	data := map[string]any{
		"ack": map[string]string{
			"title":       "Magic link sent!",
			"description": "Please check your email for the login link. The link will expire in 24 hours.",
		},
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// ConsumeMagicLink redeems the emailed token. Failures answer with the
// callback error codes the login screen knows how to render.
func (h *AuthHandler) ConsumeMagicLink(c fiber.Ctx) error {
	token := c.Query("token")

	usr, tokens, err := h.uc.ConsumeMagicLink(c.Context(), token)
	if err != nil {
		if errors.Is(err, ucauth.ErrLinkExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Link expired",
				map[string]string{"error": ucauth.CallbackOTPExpired}, err)
		}
		if errors.Is(err, ucauth.ErrLinkInvalid) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Link invalid",
				map[string]string{"error": ucauth.CallbackAccessDenied}, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	redirectTo := c.Query("redirect_to")
	if redirectTo == "" {
		redirectTo = "/dashboard"
	}

	data := map[string]any{
		"user":          usr,
		"access_token":  tokens.Access,
		"refresh_token": tokens.Refresh,
		"redirect_to":   redirectTo,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

// CallbackError maps redirect error parameters to the copy the login
// screen shows. The client strips the parameters from its location after
// rendering so the notice does not resurface on refresh.
func (h *AuthHandler) CallbackError(c fiber.Ctx) error {
	code := c.Query("error")
	message := c.Query("message")
	if code == "" && message == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	notice := ucauth.MapCallbackError(code, message)
	return response.Success(c, fiber.StatusOK, response.MessageOK, notice)
}

func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid login credentials.", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
