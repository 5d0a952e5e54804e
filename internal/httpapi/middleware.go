package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/store"
)

const ctxIdentity = "identity"

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// requireAdmin resolves AdminHeader to a stored account and rejects the
// request unless that account has the ADMIN role.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		contact := c.GetHeader(AdminHeader)
		if contact == "" {
			fail(c, http.StatusUnauthorized, "missing "+AdminHeader+" header")
			return
		}
		id, err := s.deps.Accounts.Lookup(c.Request.Context(), contact)
		switch {
		case errors.Is(err, store.ErrNotFound):
			fail(c, http.StatusForbidden, "unknown account")
			return
		case err != nil:
			s.logger.Error("admin lookup failed", "error", err)
			fail(c, http.StatusInternalServerError, "account lookup failed")
			return
		case !id.IsAdmin():
			fail(c, http.StatusForbidden, "administrator role required")
			return
		}
		c.Set(ctxIdentity, id)
		c.Next()
	}
}
