package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/dto"
	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
)

// processingHandler exposes the Tawarruq processing steps to administrators.
// Every step returns a dto.ProcessingResult; HTTP status reflects only
// whether the step succeeded, never an exception.
type processingHandler struct {
	tawarruqService portssvc.TawarruqProcessorSvc
}

func newProcessingHandler(ts portssvc.TawarruqProcessorSvc) *processingHandler {
	return &processingHandler{
		tawarruqService: ts,
	}
}

// registerProcessingRoutes registers the admin-only Tawarruq processing routes.
func registerProcessingRoutes(rg *gin.RouterGroup, tawarruqService portssvc.TawarruqProcessorSvc) {
	h := newProcessingHandler(tawarruqService)

	// Processing steps hit the trading venue; keep them to 30 per minute
	rate, _ := limiter.NewRateFromFormatted("30-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	processing := rg.Group("/applications/:id/process", middleware.RequireAdmin(), limitMiddleware)
	{
		processing.POST("/t1", h.processT1)
		processing.POST("/t2", h.processT2)
		processing.POST("/approve", h.approve)
		processing.POST("/full", h.processFullFlow)
	}
}

func (h *processingHandler) respond(c *gin.Context, result dto.ProcessingResult) {
	status := http.StatusOK
	if !result.Success {
		// A failed step is still a well-formed outcome; 422 distinguishes
		// it from transport or handler errors.
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

// processT1 godoc
// @Summary Execute the T1 commodity purchase
// @Description Executes and validates the bank's commodity purchase for a submitted application
// @Tags processing
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ProcessingResult
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 422 {object} dto.ProcessingResult "Step failed"
// @Security BearerAuth
// @Router /applications/{id}/process/t1 [post]
func (h *processingHandler) processT1(c *gin.Context) {
	h.respond(c, h.tawarruqService.ProcessT1(c.Request.Context(), c.Param("id")))
}

// processT2 godoc
// @Summary Execute the T2 resale and full Shariah check
// @Description Executes the customer's commodity resale and runs the full compliance validation
// @Tags processing
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ProcessingResult
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 422 {object} dto.ProcessingResult "Step failed or non-compliant"
// @Security BearerAuth
// @Router /applications/{id}/process/t2 [post]
func (h *processingHandler) processT2(c *gin.Context) {
	h.respond(c, h.tawarruqService.ProcessT2(c.Request.Context(), c.Param("id")))
}

// approve godoc
// @Summary Approve a validated application
// @Description Moves a t2_validated application to approved, ready for disbursement
// @Tags processing
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ProcessingResult
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 422 {object} dto.ProcessingResult "Step failed"
// @Security BearerAuth
// @Router /applications/{id}/process/approve [post]
func (h *processingHandler) approve(c *gin.Context) {
	h.respond(c, h.tawarruqService.ApproveApplication(c.Request.Context(), c.Param("id")))
}

// processFullFlow godoc
// @Summary Run the complete Tawarruq flow
// @Description Chains T1, settlement pause, T2 and approval, stopping at the first failure
// @Tags processing
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 200 {object} dto.ProcessingResult
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 422 {object} dto.ProcessingResult "Flow stopped"
// @Security BearerAuth
// @Router /applications/{id}/process/full [post]
func (h *processingHandler) processFullFlow(c *gin.Context) {
	h.respond(c, h.tawarruqService.ProcessFullFlow(c.Request.Context(), c.Param("id")))
}
