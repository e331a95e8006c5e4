package api

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// SetupStaticRoutes serves the embedded stylesheet and assets under /static
func SetupStaticRoutes(r *gin.Engine) error {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	r.StaticFS("/static", http.FS(sub))
	return nil
}
