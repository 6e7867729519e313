package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nadzrin/tawarruq_financing_app/internal/apperrors"
	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
)

// reviewHandler handles administrative review status changes.
type reviewHandler struct {
	reviewService portssvc.ReviewSvcFacade
}

func newReviewHandler(rs portssvc.ReviewSvcFacade) *reviewHandler {
	return &reviewHandler{
		reviewService: rs,
	}
}

// registerReviewRoutes registers the admin-only review routes.
func registerReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewSvcFacade) {
	h := newReviewHandler(reviewService)

	review := rg.Group("/applications/:id/review", middleware.RequireAdmin())
	{
		review.PATCH("", h.changeReviewStatus)
	}
}

// changeReviewStatus godoc
// @Summary Change an application's review status
// @Description Applies an administrative status change (approve, reject, reopen, disburse) after checking the transition allow-list
// @Tags review
// @Accept  json
// @Produce  json
// @Param   id path string true "Application ID"
// @Param   change body dto.ChangeReviewStatusRequest true "Target review status"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to change status"
// @Security BearerAuth
// @Router /applications/{id}/review [patch]
func (h *reviewHandler) changeReviewStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("id")

	var req dto.ChangeReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeReviewStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.reviewService.ChangeReviewStatus(c.Request.Context(), applicationID, req.Target, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to change review status", slog.String("application_id", applicationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}
