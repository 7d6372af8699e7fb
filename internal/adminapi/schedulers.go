package adminapi

import (
	"errors"
	"net/http"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// schedulerUpdatePayload relaxes validation rules for partial updates.
type schedulerUpdatePayload struct {
	Interval int    `json:"interval" validate:"omitempty,min=10"`
	Status   string `json:"status" validate:"omitempty,oneof=enabled disabled"`
	Remark   string `json:"remark" validate:"omitempty,max=500"`
}

func registerSchedulerRoutes() {
	webserver.AdminGET("/schedulers", listSchedulers)
	webserver.AdminPUT("/schedulers/:id", updateScheduler)
	webserver.AdminPOST("/schedulers/:id/run", triggerScheduler)
}

func listSchedulers(c echo.Context) error {
	var schedulers []domain.MarketScheduler
	if err := GetDB(c).Order("id").Find(&schedulers).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query schedulers", err.Error())
	}
	return ok(c, schedulers)
}

// updateScheduler changes a background task's interval, status or
// remark. Tasks themselves are seeded at startup, not created here.
func updateScheduler(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid scheduler ID", nil)
	}
	var payload schedulerUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse scheduler parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid scheduler parameters", err.Error())
	}

	var sched domain.MarketScheduler
	if err := GetDB(c).Where("id = ?", id).First(&sched).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Scheduler not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query scheduler", err.Error())
	}

	updates := map[string]interface{}{}
	if payload.Interval > 0 {
		updates["interval"] = payload.Interval
	}
	if payload.Status != "" {
		updates["status"] = payload.Status
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}
	if len(updates) > 0 {
		if err := GetDB(c).Model(&sched).Updates(updates).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update scheduler", err.Error())
		}
	}
	return ok(c, sched)
}

// triggerScheduler runs one background task immediately.
func triggerScheduler(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid scheduler ID", nil)
	}
	if err := webserver.AppCtx().RunSchedulerNow(id); err != nil {
		return fail(c, http.StatusInternalServerError, "RUN_FAILED", "Failed to run scheduler", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
