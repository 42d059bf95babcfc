package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/service"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/response"
)

// TutoringHandler wires HTTP endpoints to the tutoring service.
type TutoringHandler struct {
	service *service.TutoringService
}

// NewTutoringHandler creates a new handler.
func NewTutoringHandler(svc *service.TutoringService) *TutoringHandler {
	return &TutoringHandler{service: svc}
}

// Create godoc
// @Summary Request a tutoring session
// @Description The student opens a pending request addressed to a teacher. The teacher is notified.
// @Tags Tutoring
// @Accept json
// @Produce json
// @Param payload body models.CreateTutoringRequestPayload true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutoring [post]
func (h *TutoringHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateTutoringRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tutoring payload"))
		return
	}

	request, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// List godoc
// @Summary List every tutoring request
// @Tags Tutoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring [get]
func (h *TutoringHandler) List(c *gin.Context) {
	requests, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// ListMine godoc
// @Summary List the caller's requests as a student
// @Tags Tutoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/mine [get]
func (h *TutoringHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	requests, err := h.service.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// ListAssigned godoc
// @Summary List the requests addressed to the caller as a teacher
// @Tags Tutoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/assigned [get]
func (h *TutoringHandler) ListAssigned(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	requests, err := h.service.ListForTeacher(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// Get godoc
// @Summary Get one tutoring request
// @Tags Tutoring
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tutoring/{id} [get]
func (h *TutoringHandler) Get(c *gin.Context) {
	request, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Accept godoc
// @Summary Accept a pending request
// @Tags Tutoring
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutoring/{id}/accept [post]
func (h *TutoringHandler) Accept(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	request, err := h.service.Accept(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Reject godoc
// @Summary Reject a pending request
// @Tags Tutoring
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutoring/{id}/reject [post]
func (h *TutoringHandler) Reject(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	request, err := h.service.Reject(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Reschedule godoc
// @Summary Reschedule an accepted session
// @Tags Tutoring
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param payload body models.RescheduleRequest true "New date and time"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutoring/{id}/reschedule [post]
func (h *TutoringHandler) Reschedule(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reschedule payload"))
		return
	}

	request, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Rate godoc
// @Summary Rate an accepted session
// @Description Recording a rating finalizes the session in the same step.
// @Tags Tutoring
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param payload body models.RateRequest true "Rating payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutoring/{id}/rate [post]
func (h *TutoringHandler) Rate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rating payload"))
		return
	}

	request, err := h.service.Rate(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request)
}

// Delete godoc
// @Summary Delete a tutoring request
// @Description Removes the request along with its chat thread.
// @Tags Tutoring
// @Produce json
// @Param id path string true "Request id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tutoring/{id} [delete]
func (h *TutoringHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SendMessage godoc
// @Summary Post a chat message on a request
// @Tags Tutoring
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param payload body models.SendMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutoring/{id}/messages [post]
func (h *TutoringHandler) SendMessage(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// ListMessages godoc
// @Summary Read the chat thread of a request
// @Tags Tutoring
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tutoring/{id}/messages [get]
func (h *TutoringHandler) ListMessages(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	messages, err := h.service.ListMessages(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}
