package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/service"
	"github.com/uta-tic/tutoring-api/pkg/response"
)

// StatsHandler wires HTTP endpoints to the derived statistics services.
type StatsHandler struct {
	stats   *service.StatsService
	metrics *service.MetricsService
}

// NewStatsHandler creates a new handler.
func NewStatsHandler(stats *service.StatsService, metrics *service.MetricsService) *StatsHandler {
	return &StatsHandler{stats: stats, metrics: metrics}
}

// Users godoc
// @Summary User population metrics
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/users [get]
func (h *StatsHandler) Users(c *gin.Context) {
	metrics, err := h.stats.UserMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metrics)
}

// Tutoring godoc
// @Summary Tutoring request metrics
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/tutoring [get]
func (h *StatsHandler) Tutoring(c *gin.Context) {
	metrics, err := h.stats.TutoringMetrics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metrics)
}

// TeacherRatings godoc
// @Summary Teacher rating leaderboard
// @Description Averages over finalized rated sessions, sorted best first.
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/teachers [get]
func (h *StatsHandler) TeacherRatings(c *gin.Context) {
	ratings, err := h.stats.TeacherRatings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ratings)
}

// System godoc
// @Summary Runtime health snapshot
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/system [get]
func (h *StatsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot())
}
