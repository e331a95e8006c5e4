package wizard

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/claimwizard/internal/api/httperr"
	"github.com/liliang-cn/claimwizard/internal/api/middleware"
	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/service"
)

// Handler handles wizard API requests
type Handler struct {
	wizardService *service.WizardService
}

// NewHandler creates a new wizard handler
func NewHandler(wizardService *service.WizardService) *Handler {
	return &Handler{wizardService: wizardService}
}

// RegisterRoutes registers wizard routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.GetPage)
	r.GET("/conditions", h.ListConditions)
	r.POST("/select", h.Select)
	r.POST("/documents", h.UploadDocuments)
	r.POST("/navigate", h.Navigate)
	r.POST("/submit", h.Submit)
}

// GetPage returns the projection of the current step
func (h *Handler) GetPage(c *gin.Context) {
	page, err := h.wizardService.Page(c.Request.Context(), middleware.SessionID(c), c.Query("q"))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListConditions returns the filtered catalog with selection flags
func (h *Handler) ListConditions(c *gin.Context) {
	conditions, err := h.wizardService.Conditions(c.Request.Context(), middleware.SessionID(c), c.Query("q"))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conditions": conditions})
}

// Select toggles a condition
func (h *Handler) Select(c *gin.Context) {
	var req domain.SelectConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.wizardService.Select(c.Request.Context(), middleware.SessionID(c), req.ConditionID)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UploadDocuments records the names of uploaded files. Accepts multipart
// "files" fields or a JSON body.
func (h *Handler) UploadDocuments(c *gin.Context) {
	var files []domain.FileRef

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}
		files = FileRefs(form.File["files"])
	} else {
		var req domain.AddDocumentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files = req.Files
	}

	page, err := h.wizardService.AddDocuments(c.Request.Context(), middleware.SessionID(c), files)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Navigate moves the wizard
func (h *Handler) Navigate(c *gin.Context) {
	var req domain.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.wizardService.Navigate(c.Request.Context(), middleware.SessionID(c), req.Direction)
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Submit acknowledges the claim
func (h *Handler) Submit(c *gin.Context) {
	ack, err := h.wizardService.Submit(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httperr.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

// FileRefs keeps the names of uploaded files. Contents are not read.
func FileRefs(headers []*multipart.FileHeader) []domain.FileRef {
	refs := make([]domain.FileRef, 0, len(headers))
	for _, fh := range headers {
		refs = append(refs, domain.FileRef{Name: fh.Filename})
	}
	return refs
}
