package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/api/httperr"
	"github.com/liliang-cn/claimwizard/internal/api/middleware"
	"github.com/liliang-cn/claimwizard/internal/api/wizard"
	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/service"
	"github.com/liliang-cn/claimwizard/internal/view"
)

// Handler serves the server-rendered wizard pages
type Handler struct {
	wizardService *service.WizardService
	chatService   *service.ChatService
	logger        *zap.Logger
}

// NewHandler creates a new web handler
func NewHandler(wizardService *service.WizardService, chatService *service.ChatService, logger *zap.Logger) *Handler {
	return &Handler{
		wizardService: wizardService,
		chatService:   chatService,
		logger:        logger,
	}
}

// RegisterRoutes registers page and form routes
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/wizard/select", h.Select)
	r.POST("/wizard/documents", h.UploadDocuments)
	r.POST("/wizard/navigate", h.Navigate)
	r.POST("/wizard/submit", h.Submit)
	r.POST("/chat/open", h.OpenChat)
	r.POST("/chat/close", h.CloseChat)
	r.POST("/chat/messages", h.SendMessage)
}

// Index renders the wizard page
func (h *Handler) Index(c *gin.Context) {
	page, err := h.wizardService.Page(c.Request.Context(), middleware.SessionID(c), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}

	layout := view.Layout{Page: page}
	if c.Query("submitted") != "" {
		layout.Flash = service.SubmitAcknowledgment
	}
	c.HTML(http.StatusOK, "page", layout)
}

// Select toggles a condition and returns to the search results
func (h *Handler) Select(c *gin.Context) {
	var req domain.SelectConditionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.wizardService.Select(c.Request.Context(), middleware.SessionID(c), req.ConditionID); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, url.Values{"q": {c.PostForm("q")}})
}

// UploadDocuments records the names of the picked files
func (h *Handler) UploadDocuments(c *gin.Context) {
	var files []domain.FileRef
	if form, err := c.MultipartForm(); err == nil {
		files = wizard.FileRefs(form.File["files"])
	}

	if _, err := h.wizardService.AddDocuments(c.Request.Context(), middleware.SessionID(c), files); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, nil)
}

// Navigate moves the wizard. A refused move leaves the page as is.
func (h *Handler) Navigate(c *gin.Context) {
	var req domain.NavigateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	_, err := h.wizardService.Navigate(c.Request.Context(), middleware.SessionID(c), req.Direction)
	if err != nil && !errors.Is(err, domain.ErrPreconditionUnmet) {
		h.fail(c, err)
		return
	}
	redirect(c, nil)
}

// Submit acknowledges the claim
func (h *Handler) Submit(c *gin.Context) {
	if _, err := h.wizardService.Submit(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, url.Values{"submitted": {"1"}})
}

// OpenChat shows the chat panel
func (h *Handler) OpenChat(c *gin.Context) {
	if _, err := h.chatService.Open(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, nil)
}

// CloseChat hides the chat panel
func (h *Handler) CloseChat(c *gin.Context) {
	if _, err := h.chatService.Close(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.fail(c, err)
		return
	}
	redirect(c, nil)
}

// SendMessage posts a chat message; blank input is ignored
func (h *Handler) SendMessage(c *gin.Context) {
	req := domain.ChatRequest{Message: c.PostForm("message")}
	_, _, err := h.chatService.Send(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil && !errors.Is(err, domain.ErrInvalidRequest) {
		h.fail(c, err)
		return
	}
	redirect(c, nil)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := httperr.Status(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("page request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.String(status, http.StatusText(status))
}

func redirect(c *gin.Context, q url.Values) {
	target := "/"
	if enc := q.Encode(); enc != "" && enc != "q=" {
		target += "?" + enc
	}
	c.Redirect(http.StatusSeeOther, target)
}
