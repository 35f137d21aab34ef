package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/community-api/internal/api/metrics"
	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/internal/core/ports"
)

type RegistrationHandler struct {
	regService ports.RegistrationService
}

func NewRegistrationHandler(regService ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// Signup registers a new member using a one-time acceptance key.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/signup [post]
func (h *RegistrationHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.regService.Register(c.Request().Context(), ports.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		Email:         req.Email,
		Mobile:        req.Mobile,
		AcceptanceKey: req.AcceptanceKey,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// RequestKey mints a new acceptance key. The generated value is deliberately
// absent from the response; an admin retrieves it via the key listing.
//
// @Summary      Request an acceptance key
// @Tags         auth
// @Produce      json
// @Success      200   {object}  messageResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/request-key [post]
func (h *RegistrationHandler) RequestKey(c echo.Context) error {
	if _, err := h.regService.RequestKey(c.Request().Context()); err != nil {
		return err
	}
	metrics.KeysRequestedTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Key generated. Please contact admin to retrieve it."})
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingKey), errors.Is(err, domain.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	default:
		return "error"
	}
}
