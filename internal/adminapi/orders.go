package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/araddon/dateparse"
	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

func registerOrderRoutes() {
	webserver.AdminGET("/orders", adminOrdersPage)
	webserver.AdminPUT("/orders/:id/status", updateOrderStatus)
	webserver.AdminGET("/orders/export", exportOrdersXLSX)
}

// orderRow is an order joined with the buyer's name for the listing.
type orderRow struct {
	domain.Order
	UserName string `gorm:"column:user_name"`
}

// adminOrdersPage lists orders with status and date-range filters.
// Dates accept any common format.
func adminOrdersPage(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))

	query := GetDB(c).Table("orders o").
		Select("o.*, u.name as user_name").
		Joins("left join users u on u.id = o.user_id")
	if status != "" && domain.ValidOrderStatus(status) {
		query = query.Where("o.status = ?", status)
	}
	if start != "" {
		if t, err := dateparse.ParseAny(start); err == nil {
			query = query.Where("o.created_at >= ?", t)
		}
	}
	if end != "" {
		if t, err := dateparse.ParseAny(end); err == nil {
			query = query.Where("o.created_at < ?", t.Add(24*time.Hour))
		}
	}

	var orders []orderRow
	if err := query.Order("o.created_at desc").Scan(&orders).Error; err != nil {
		return err
	}
	return webserver.Render(c, "admin_orders.tmpl", echo.Map{
		"Orders": orders,
		"Status": status,
		"Start":  start,
		"End":    end,
		"Statuses": []domain.OrderStatus{
			domain.OrderStatusPending, domain.OrderStatusProcessing,
			domain.OrderStatusShipped, domain.OrderStatusCompleted,
			domain.OrderStatusCancelled,
		},
	})
}

type orderStatusPayload struct {
	Status string `json:"status" form:"status"`
}

// updateOrderStatus moves an order to another status. Unknown status
// values are rejected rather than written through.
func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status parameters", nil)
	}
	if !domain.ValidOrderStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", payload.Status)
	}

	result := GetDB(c).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", domain.OrderStatus(payload.Status))
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	zap.S().Infof("order %d moved to %s", id, payload.Status)
	return ok(c, echo.Map{"id": cast.ToString(id), "status": payload.Status})
}

func exportOrdersXLSX(c echo.Context) error {
	var orders []orderRow
	err := GetDB(c).Table("orders o").
		Select("o.*, u.name as user_name").
		Joins("left join users u on u.id = o.user_id").
		Order("o.created_at desc").
		Scan(&orders).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	xlsx := excelize.NewFile()
	headers := []string{"Order ID", "Customer", "Total", "Payment", "Status", "Created"}
	for i, h := range headers {
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("%c1", 'A'+i), h)
	}
	for i, o := range orders {
		row := i + 2
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("A%d", row), cast.ToString(o.ID))
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("B%d", row), o.UserName)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("C%d", row), o.TotalAmount)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("D%d", row), o.PaymentMethod)
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("E%d", row), string(o.Status))
		xlsx.SetCellValue("Sheet1", fmt.Sprintf("F%d", row), o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="orders-%s.xlsx"`, time.Now().Format("20060102")))
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}
