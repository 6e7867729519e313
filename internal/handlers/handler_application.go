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

// applicationHandler handles HTTP requests related to financing applications.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
}

// newApplicationHandler creates a new applicationHandler.
func newApplicationHandler(as portssvc.ApplicationSvcFacade) *applicationHandler {
	return &applicationHandler{
		applicationService: as,
	}
}

// registerApplicationRoutes registers routes related to financing applications.
func registerApplicationRoutes(rg *gin.RouterGroup, applicationService portssvc.ApplicationSvcFacade) {
	h := newApplicationHandler(applicationService)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.createApplication)
		applications.GET("", h.listApplications)
		applications.GET("/:id", h.getApplicationByID)
		applications.POST("/:id/submit", h.submitApplication)
		applications.GET("/:id/trades", h.listTrades)
		applications.GET("/:id/validations", h.listValidations)
		applications.GET("/:id/audit", middleware.RequireAdmin(), h.listAuditLogs)
	}
}

// createApplication godoc
// @Summary Create a financing application
// @Description Creates a draft Tawarruq financing application for the authenticated customer
// @Tags applications
// @Accept  json
// @Produce  json
// @Param   application body dto.CreateApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create application"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) createApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), customerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating application", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create application in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// listApplications godoc
// @Summary List the customer's applications
// @Description Retrieves the authenticated customer's financing applications, newest first
// @Tags applications
// @Produce  json
// @Param   limit query int false "Page size (default 20)"
// @Param   offset query int false "Offset"
// @Success 200 {array} dto.ApplicationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list applications"
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	apps, err := h.applicationService.ListApplicationsByCustomer(c.Request.Context(), customerID, params)
	if err != nil {
		logger.Error("Failed to list applications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponses(apps))
}

// getApplicationByID godoc
// @Summary Get an application
// @Description Retrieves a financing application by ID
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to retrieve application"
// @Security BearerAuth
// @Router /applications/{id} [get]
func (h *applicationHandler) getApplicationByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("id")

	app, err := h.applicationService.GetApplicationByID(c.Request.Context(), applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			logger.Error("Failed to get application", slog.String("application_id", applicationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// submitApplication godoc
// @Summary Submit a draft application
// @Description Moves the customer's draft application to submitted, making it eligible for processing
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Application is not in draft"
// @Failure 500 {object} map[string]string "Failed to submit application"
// @Security BearerAuth
// @Router /applications/{id}/submit [post]
func (h *applicationHandler) submitApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("id")

	customerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	app, err := h.applicationService.SubmitApplication(c.Request.Context(), applicationID, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to submit application", slog.String("application_id", applicationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// listTrades godoc
// @Summary List an application's trade legs
// @Description Retrieves the commodity trades (T1 and T2) executed for an application
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {array} dto.TradeResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to list trades"
// @Security BearerAuth
// @Router /applications/{id}/trades [get]
func (h *applicationHandler) listTrades(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("id")

	trades, err := h.applicationService.ListTrades(c.Request.Context(), applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			logger.Error("Failed to list trades", slog.String("application_id", applicationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trades"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeResponses(trades))
}

// listValidations godoc
// @Summary List an application's validation history
// @Description Retrieves the append-only Shariah validation records for an application
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {array} dto.ValidationRecordResponse
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to list validations"
// @Security BearerAuth
// @Router /applications/{id}/validations [get]
func (h *applicationHandler) listValidations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("id")

	records, err := h.applicationService.ListValidations(c.Request.Context(), applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			logger.Error("Failed to list validations", slog.String("application_id", applicationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list validations"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationRecordResponses(records))
}

// listAuditLogs godoc
// @Summary List an application's audit trail
// @Description Retrieves the append-only audit log entries recorded for an application
// @Tags applications
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {array} dto.AuditLogResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 500 {object} map[string]string "Failed to list audit logs"
// @Security BearerAuth
// @Router /applications/{id}/audit [get]
func (h *applicationHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("id")

	entries, err := h.applicationService.ListAuditLogs(c.Request.Context(), applicationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			logger.Error("Failed to list audit logs", slog.String("application_id", applicationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit logs"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditLogResponses(entries))
}
