package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/service"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/response"
)

// ImportHandler wires the bulk import endpoints.
type ImportHandler struct {
	service *service.ImportService
}

// NewImportHandler creates a new handler.
func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{service: svc}
}

// Users godoc
// @Summary Bulk-import user accounts
// @Description Rows are independent: failures are reported per row and never abort the batch.
// @Tags Imports
// @Accept json
// @Produce json
// @Param payload body models.ImportUsersRequest true "Import payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /imports/users [post]
func (h *ImportHandler) Users(c *gin.Context) {
	var req models.ImportUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid import payload"))
		return
	}

	summary, err := h.service.ImportUsers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Subjects godoc
// @Summary Bulk-import a curriculum
// @Description Career codes must already exist; semester labels are created on demand.
// @Tags Imports
// @Accept json
// @Produce json
// @Param payload body models.ImportSubjectsRequest true "Import payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /imports/subjects [post]
func (h *ImportHandler) Subjects(c *gin.Context) {
	var req models.ImportSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid import payload"))
		return
	}

	summary, err := h.service.ImportSubjects(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
