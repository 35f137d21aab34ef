package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/community-api/internal/api/metrics"
	"github.com/memberhub/community-api/internal/core/domain"
	"github.com/memberhub/community-api/internal/core/ports"
)

type AnnouncementHandler struct {
	announcements ports.AnnouncementService
}

func NewAnnouncementHandler(announcements ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// Post publishes a new announcement. Admin only.
//
// @Summary      Post an announcement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postUpdateRequest  true  "Announcement content"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/updates [post]
func (h *AnnouncementHandler) Post(c echo.Context) error {
	var req postUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.announcements.Post(c.Request().Context(), req.Content); err != nil {
		return err
	}
	metrics.AnnouncementsPostedTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Update posted successfully"})
}

// List returns the full feed newest-first. Unauthenticated.
//
// @Summary      Read the announcement feed
// @Tags         public
// @Produce      json
// @Success      200   {array}   domain.Announcement
// @Failure      500   {object}  errorResponse
// @Router       /api/updates [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	feed, err := h.announcements.List(c.Request().Context())
	if err != nil {
		return err
	}
	if feed == nil {
		feed = []domain.Announcement{}
	}
	return c.JSON(http.StatusOK, feed)
}
