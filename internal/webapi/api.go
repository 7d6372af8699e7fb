package webapi

import (
	"net/http"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
)

// Token-authenticated JSON endpoints for programmatic clients. Tokens
// are issued by the login route.

func apiSession(c echo.Context) error {
	uid := webserver.APIUserID(c)
	var user domain.User
	if err := webserver.GetDB(c).First(&user, uid).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

func apiOrders(c echo.Context) error {
	uid := webserver.APIUserID(c)
	var orders []domain.Order
	if err := webserver.GetDB(c).
		Where("user_id = ?", uid).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

func apiCart(c echo.Context) error {
	uid := webserver.APIUserID(c)
	rec, err := shopService(c).Reconcile(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"lines":   rec.Lines,
		"total":   rec.Total,
	})
}
