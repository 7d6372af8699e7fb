package webapi

import (
	"net/http"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

func ordersPage(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	var orders []domain.Order
	if err := webserver.GetDB(c).
		Where("user_id = ?", uid).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}
	return webserver.Render(c, "orders.tmpl", echo.Map{"Orders": orders})
}

// orderDetailsPage shows one order. Owners see their own orders;
// admins may open any order.
func orderDetailsPage(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	id := cast.ToInt64(c.Param("id"))
	db := webserver.GetDB(c)

	query := db.Where("id = ?", id)
	if webserver.CurrentUserRole(c) != domain.RoleAdmin {
		query = query.Where("user_id = ?", uid)
	}
	var order domain.Order
	if err := query.First(&order).Error; err != nil {
		webserver.Flash(c, "warning", "Order not found")
		return c.Redirect(http.StatusFound, "/orders")
	}

	var items []domain.OrderItem
	db.Where("order_id = ?", order.ID).Find(&items)

	return webserver.Render(c, "order_details.tmpl", echo.Map{
		"Order": order,
		"Items": items,
	})
}
