package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/service"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/response"
)

// CareerHandler wires HTTP endpoints to the career service.
type CareerHandler struct {
	service *service.CareerService
}

// NewCareerHandler creates a new handler.
func NewCareerHandler(svc *service.CareerService) *CareerHandler {
	return &CareerHandler{service: svc}
}

// Create godoc
// @Summary Register a career
// @Tags Careers
// @Accept json
// @Produce json
// @Param payload body models.CreateCareerRequest true "Career payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /careers [post]
func (h *CareerHandler) Create(c *gin.Context) {
	var req models.CreateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid career payload"))
		return
	}

	career, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, career)
}

// List godoc
// @Summary List careers
// @Tags Careers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /careers [get]
func (h *CareerHandler) List(c *gin.Context) {
	careers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, careers)
}

// Get godoc
// @Summary Get one career
// @Tags Careers
// @Produce json
// @Param id path string true "Career id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /careers/{id} [get]
func (h *CareerHandler) Get(c *gin.Context) {
	career, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, career)
}

// Update godoc
// @Summary Update a career
// @Tags Careers
// @Accept json
// @Produce json
// @Param id path string true "Career id"
// @Param payload body models.UpdateCareerRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /careers/{id} [put]
func (h *CareerHandler) Update(c *gin.Context) {
	var req models.UpdateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid update payload"))
		return
	}

	career, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, career)
}

// Delete godoc
// @Summary Delete a career
// @Tags Careers
// @Produce json
// @Param id path string true "Career id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /careers/{id} [delete]
func (h *CareerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
