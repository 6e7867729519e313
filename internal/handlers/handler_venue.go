package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nadzrin/tawarruq_financing_app/internal/core/ports/services"
	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
)

// venueHandler exposes trading venue lookups.
type venueHandler struct {
	venue portssvc.VenueClient
}

func newVenueHandler(v portssvc.VenueClient) *venueHandler {
	return &venueHandler{venue: v}
}

// registerVenueRoutes registers venue lookup routes.
func registerVenueRoutes(rg *gin.RouterGroup, venue portssvc.VenueClient) {
	h := newVenueHandler(venue)

	certificates := rg.Group("/certificates")
	{
		certificates.GET("/:number/verify", h.verifyCertificate)
	}
}

// verifyCertificate godoc
// @Summary Verify a trade certificate
// @Description Checks a commodity trade certificate with the trading venue
// @Tags venue
// @Produce  json
// @Param   number path string true "Certificate number"
// @Success 200 {object} domain.CertificateVerification
// @Failure 500 {object} map[string]string "Verification failed"
// @Security BearerAuth
// @Router /certificates/{number}/verify [get]
func (h *venueHandler) verifyCertificate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number := c.Param("number")

	verification, err := h.venue.VerifyCertificate(c.Request.Context(), number)
	if err != nil {
		logger.Error("Certificate verification failed", slog.String("certificate", number), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, verification)
}
