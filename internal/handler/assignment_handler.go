package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/service"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/response"
)

// AssignmentHandler wires HTTP endpoints to the assignment service.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler creates a new handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// Create godoc
// @Summary Assign a teacher to a subject
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body models.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	assignment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// List godoc
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Param teacher_id query string false "Teacher filter"
// @Param career_id query string false "Career filter"
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		assignments, err := h.service.ListByTeacher(ctx, teacherID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, assignments)
		return
	}
	if careerID := c.Query("career_id"); careerID != "" {
		assignments, err := h.service.ListByCareer(ctx, careerID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, assignments)
		return
	}

	assignments, err := h.service.List(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// AvailableTeachers godoc
// @Summary Teachers available for a subject and semester
// @Description Lists teachers holding an active assignment for the subject, semester and career. An empty list is a valid answer.
// @Tags Assignments
// @Produce json
// @Param subject_id query string true "Subject id"
// @Param semester_id query string true "Semester id"
// @Param career_id query string true "Career id"
// @Success 200 {object} response.Envelope
// @Router /assignments/teachers [get]
func (h *AssignmentHandler) AvailableTeachers(c *gin.Context) {
	subjectID := c.Query("subject_id")
	semesterID := c.Query("semester_id")
	careerID := c.Query("career_id")
	if subjectID == "" || semesterID == "" || careerID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subject_id, semester_id and career_id are required"))
		return
	}

	teachers, err := h.service.AvailableTeachers(c.Request.Context(), subjectID, semesterID, careerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
