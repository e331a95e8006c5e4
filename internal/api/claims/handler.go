package claims

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/service"
)

// Handler serves the condition query endpoint
type Handler struct {
	catalogService *service.CatalogService
}

// NewHandler creates a new claims handler
func NewHandler(catalogService *service.CatalogService) *Handler {
	return &Handler{catalogService: catalogService}
}

// RegisterRoutes registers claims routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Query)
}

// Query returns conditions whose name or description contains the query
func (h *Handler) Query(c *gin.Context) {
	var req domain.ConditionQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.catalogService.Query(c.Request.Context(), *req.Query))
}
