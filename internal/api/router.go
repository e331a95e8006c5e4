package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/api/chat"
	"github.com/liliang-cn/claimwizard/internal/api/claims"
	"github.com/liliang-cn/claimwizard/internal/api/httperr"
	"github.com/liliang-cn/claimwizard/internal/api/middleware"
	"github.com/liliang-cn/claimwizard/internal/api/web"
	"github.com/liliang-cn/claimwizard/internal/api/wizard"
	"github.com/liliang-cn/claimwizard/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
	Session      middleware.SessionOptions
	Templates    *template.Template
	Logger       *zap.Logger
}

// Services bundles what the handlers call into
type Services struct {
	Sessions *service.SessionService
	Wizard   *service.WizardService
	Chat     *service.ChatService
	Catalog  *service.CatalogService
}

// SetupRouter sets up the Gin router
func SetupRouter(svc Services, cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	r.SetHTMLTemplate(cfg.Templates)
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(cfg.Logger))

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Static files (stylesheet)
	if err := SetupStaticRoutes(r); err != nil {
		return nil, err
	}

	// Condition query endpoint (no session)
	claimsHandler := claims.NewHandler(svc.Catalog)
	claimsHandler.RegisterRoutes(r.Group("/api/claims"))

	// Everything below is scoped to the caller's session
	scoped := r.Group("")
	scoped.Use(middleware.Session(svc.Sessions, cfg.Session, cfg.Logger))

	web.NewHandler(svc.Wizard, svc.Chat, cfg.Logger).RegisterRoutes(scoped)

	wizardHandler := wizard.NewHandler(svc.Wizard)
	wizardHandler.RegisterRoutes(scoped.Group("/api/wizard"))

	chatHandler := chat.NewHandler(svc.Chat)
	chatHandler.RegisterRoutes(scoped.Group("/api/chat"))

	scoped.DELETE("/api/session", func(c *gin.Context) {
		if err := svc.Sessions.Dispose(c.Request.Context(), middleware.SessionID(c)); err != nil {
			httperr.JSON(c, err)
			return
		}
		c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", cfg.Session.Secure, true)
		c.JSON(http.StatusOK, gin.H{"message": "session disposed"})
	})

	return r, nil
}
