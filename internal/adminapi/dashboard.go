package adminapi

import (
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/campusworks/campusmarket/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"
)

func registerDashboardRoutes() {
	webserver.AdminGET("", dashboardPage)
	webserver.AdminGET("/", dashboardPage)
	webserver.AdminGET("/dashboard/metrics", dashboardMetrics)
}

func dashboardPage(c echo.Context) error {
	db := GetDB(c)

	var totalUsers, totalProducts, totalOrders, pendingOrders, newMessages int64
	db.Model(&domain.User{}).Count(&totalUsers)
	db.Model(&domain.Product{}).Count(&totalProducts)
	db.Model(&domain.Order{}).Count(&totalOrders)
	db.Model(&domain.Order{}).Where("status = ?", domain.OrderStatusPending).Count(&pendingOrders)
	db.Model(&domain.ContactMessage{}).Where("status = ?", domain.MessageStatusNew).Count(&newMessages)

	var revenue float64
	db.Model(&domain.Order{}).
		Where("status <> ?", domain.OrderStatusCancelled).
		Select("coalesce(sum(total_amount), 0)").Scan(&revenue)

	var ratings []float64
	db.Model(&domain.Feedback{}).Pluck("rating", &ratings)
	avgRating, err := stats.Mean(ratings)
	if err != nil {
		avgRating = 0
	}

	cpuPercent, memPercent := hostUsage()

	var recentOrders []domain.Order
	db.Order("created_at desc").Limit(5).Find(&recentOrders)
	var recentUsers []domain.User
	db.Order("created_at desc").Limit(5).Find(&recentUsers)
	var recentMessages []domain.ContactMessage
	db.Order("created_at desc").Limit(5).Find(&recentMessages)

	return webserver.Render(c, "admin_dashboard.tmpl", echo.Map{
		"TotalUsers":     totalUsers,
		"TotalProducts":  totalProducts,
		"TotalOrders":    totalOrders,
		"PendingOrders":  pendingOrders,
		"TotalRevenue":   revenue,
		"AvgRating":      avgRating,
		"NewMessages":    newMessages,
		"CpuPercent":     cpuPercent,
		"MemPercent":     memPercent,
		"RecentOrders":   recentOrders,
		"RecentUsers":    recentUsers,
		"RecentMessages": recentMessages,
	})
}

// dashboardMetrics reports site activity counters for the last day.
func dashboardMetrics(c echo.Context) error {
	since := time.Now().Add(-24 * time.Hour)
	return ok(c, echo.Map{
		"http_requests": metrics.SumSince(metrics.MetricHTTPRequest, since),
		"logins":        metrics.SumSince(metrics.MetricUserLogin, since),
		"registrations": metrics.SumSince(metrics.MetricUserRegister, since),
		"orders":        metrics.SumSince(metrics.MetricOrderPlaced, since),
	})
}

func hostUsage() (cpuPercent, memPercent float64) {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	} else if err != nil {
		zap.S().Debugf("cpu usage unavailable: %s", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		memPercent = vm.UsedPercent
	}
	return cpuPercent, memPercent
}
