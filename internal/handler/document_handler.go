package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/service"
	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
	"github.com/uta-tic/tutoring-api/pkg/response"
)

// DocumentHandler wires HTTP endpoints to the document service.
type DocumentHandler struct {
	service *service.DocumentService
	users   *service.UserService
}

// NewDocumentHandler creates a new handler.
func NewDocumentHandler(svc *service.DocumentService, users *service.UserService) *DocumentHandler {
	return &DocumentHandler{service: svc, users: users}
}

// Upload godoc
// @Summary Publish a career document
// @Description Accepts a multipart PDF upload. Students of the career are notified.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Param name formData string true "Display name"
// @Param career formData string true "Target career"
// @Param description formData string false "Description"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "a file field is required"))
		return
	}
	name := c.PostForm("name")
	career := c.PostForm("career")
	if name == "" || career == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name and career are required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to read upload"))
		return
	}
	defer file.Close()

	document, err := h.service.Upload(c.Request.Context(), *claims, career, name, c.PostForm("description"), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, document)
}

// actorCareer resolves the caller's career from their user record. Students
// and coordinators are career-scoped; other roles skip the lookup.
func (h *DocumentHandler) actorCareer(c *gin.Context, claims *models.JWTClaims) (string, error) {
	if claims.ActiveRole != models.RoleStudent && claims.ActiveRole != models.RoleCoordinator {
		return "", nil
	}
	actor, err := h.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		return "", err
	}
	return actor.Career, nil
}

// List godoc
// @Summary List active documents
// @Description Students only see documents of their own career.
// @Tags Documents
// @Produce json
// @Param career query string false "Career filter"
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	career, err := h.actorCareer(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	documents, err := h.service.List(c.Request.Context(), *claims, career, c.Query("career"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, documents)
}

// Get godoc
// @Summary Get document metadata
// @Description Students only read documents of their own career.
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	career, err := h.actorCareer(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	document, err := h.service.Get(c.Request.Context(), c.Param("id"), *claims, career)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, document)
}

// Download godoc
// @Summary Download the stored PDF
// @Description Students only download documents of their own career.
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Document id"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	career, err := h.actorCareer(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	document, file, err := h.service.Open(c.Request.Context(), c.Param("id"), *claims, career)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	disposition := fmt.Sprintf("attachment; filename=%q", document.Name+".pdf")
	c.DataFromReader(http.StatusOK, document.Size, "application/pdf", file, map[string]string{
		"Content-Disposition": disposition,
	})
}

// Delete godoc
// @Summary Delete a document
// @Description Coordinators may only delete documents of their own career.
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	career, err := h.actorCareer(c, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), *claims, career); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
