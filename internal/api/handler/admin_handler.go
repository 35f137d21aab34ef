package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/community-api/internal/api/metrics"
	"github.com/memberhub/community-api/internal/core/ports"
)

// AdminHandler serves the admin-only key and member operations. Routes are
// gated by the Auth and RBAC middleware; handlers assume an admin caller.
type AdminHandler struct {
	memberService ports.MemberService
}

func NewAdminHandler(memberService ports.MemberService) *AdminHandler {
	return &AdminHandler{memberService: memberService}
}

// ListKeys returns all acceptance keys newest-first, with the redeemer's
// details where a key has been used.
//
// @Summary      List acceptance keys
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   domain.RedeemedKey
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/keys [get]
func (h *AdminHandler) ListKeys(c echo.Context) error {
	keys, err := h.memberService.ListKeys(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, keys)
}

// ListUsers returns all non-admin accounts.
//
// @Summary      List members
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   memberResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	members, err := h.memberService.ListMembers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			ID:       m.ID,
			Username: m.Username,
			Email:    m.Email,
			IsBanned: m.Banned,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// SetBanned sets or clears a member's ban flag. Idempotent.
//
// @Summary      Ban or unban a member
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      banRequest  true  "Target user and flag"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/ban [post]
func (h *AdminHandler) SetBanned(c echo.Context) error {
	var req banRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.memberService.SetBanned(c.Request().Context(), req.UserID, req.IsBanned); err != nil {
		return err
	}

	action, msg := "unban", "User unbanned successfully"
	if req.IsBanned {
		action, msg = "ban", "User banned successfully"
	}
	metrics.BansTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
