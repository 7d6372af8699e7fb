// Package adminapi implements the back office mounted under /admin:
// the dashboard, product and user management, order processing, the
// message inboxes and the scheduler controls. Pages are rendered
// server-side; mutations answer JSON for the page scripts.
package adminapi

import (
	"net/http"
	"strconv"

	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// InitRoutes attaches every back-office route to the web server.
func InitRoutes() {
	registerDashboardRoutes()
	registerProductRoutes()
	registerUserRoutes()
	registerOrderRoutes()
	registerMessageRoutes()
	registerSchedulerRoutes()
}

// GetDB shortens the request-scoped handle lookup for this package.
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"data":     items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("pageSize"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
