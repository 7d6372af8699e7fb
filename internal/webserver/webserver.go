// Package webserver hosts the echo HTTP server: session handling,
// template rendering, the route registry used by the webapi and
// adminapi packages, and the shared request middleware.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/campusworks/campusmarket/internal/app"
	"github.com/campusworks/campusmarket/pkg/common"
	"github.com/campusworks/campusmarket/pkg/metrics"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const ctxDBKey = "campusmarket_db"

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	public *echo.Group
	user   *echo.Group
	api    *echo.Group
	admin  *echo.Group
}

var server *WebServer

// Init builds the global web server instance. Route registration via
// the package helpers must happen after Init and before Start.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &JsoniterSerializer{}
	e.Validator = NewWebValidator()
	e.Renderer = NewRenderer()

	cfg := appCtx.Config()
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16M"))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Web.SessionSecret))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxDBKey, appCtx.DB())
			metrics.Inc(metrics.MetricHTTPRequest)
			return next(c)
		}
	})

	e.Static("/static/uploads", cfg.GetUploadDir())

	server = &WebServer{
		appCtx: appCtx,
		root:   e,
		public: e.Group(""),
		user:   e.Group("", LoginRequired),
		api:    e.Group("/api", JwtRequired(cfg.Web.JwtSecret)),
		admin:  e.Group("/admin", LoginRequired, AdminRequired),
	}
	return server
}

// Instance returns the initialized web server.
func Instance() *WebServer {
	return server
}

// AppCtx exposes the application context to handler packages.
func AppCtx() app.AppContext {
	return server.appCtx
}

// GetDB fetches the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(ctxDBKey).(*gorm.DB)
}

// Setting reads a runtime setting, falling back to def when the server
// is not initialized or the value is blank.
func Setting(category, name, def string) string {
	if server == nil || server.appCtx.ConfigMgr() == nil {
		return def
	}
	return common.IfEmptyStr(server.appCtx.ConfigMgr().GetString(category, name), def)
}

// Start runs the server until ctx is cancelled.
func (s *WebServer) Start(ctx context.Context) error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)

	errch := make(chan error, 1)
	go func() {
		errch <- s.root.Start(addr)
	}()

	select {
	case <-ctx.Done():
		return s.root.Shutdown(context.Background())
	case err := <-errch:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Public routes (no auth).

func WebGET(path string, h echo.HandlerFunc)  { server.public.GET(path, h) }
func WebPOST(path string, h echo.HandlerFunc) { server.public.POST(path, h) }

// Routes requiring a logged-in session.

func UserGET(path string, h echo.HandlerFunc)  { server.user.GET(path, h) }
func UserPOST(path string, h echo.HandlerFunc) { server.user.POST(path, h) }

// JWT-guarded JSON API routes under /api.

func JwtGET(path string, h echo.HandlerFunc)  { server.api.GET(path, h) }
func JwtPOST(path string, h echo.HandlerFunc) { server.api.POST(path, h) }

// Admin routes under /admin.

func AdminGET(path string, h echo.HandlerFunc)    { server.admin.GET(path, h) }
func AdminPOST(path string, h echo.HandlerFunc)   { server.admin.POST(path, h) }
func AdminPUT(path string, h echo.HandlerFunc)    { server.admin.PUT(path, h) }
func AdminDELETE(path string, h echo.HandlerFunc) { server.admin.DELETE(path, h) }
