package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// originPolicy is the parsed allow list. Only origins listed by name may
// send credentials; "*" admits anyone without them.
type originPolicy struct {
	any      bool
	explicit map[string]struct{}
}

func newOriginPolicy(allowOrigins []string) originPolicy {
	p := originPolicy{explicit: make(map[string]struct{}, len(allowOrigins))}
	for _, o := range allowOrigins {
		if o == "*" {
			p.any = true
			continue
		}
		p.explicit[o] = struct{}{}
	}
	return p
}

// CORS answers preflights and decorates API responses for the configured
// origins. A listed origin is echoed with credentials allowed; a wildcard
// match gets "*" and no credentials.
func CORS(allowOrigins []string) gin.HandlerFunc {
	policy := newOriginPolicy(allowOrigins)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()

		_, listed := policy.explicit[origin]
		switch {
		case origin != "" && listed:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		case policy.any:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if h.Get("Access-Control-Allow-Origin") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
