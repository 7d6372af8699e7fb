package adminapi

import (
	"net/http"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

func registerMessageRoutes() {
	webserver.AdminGET("/feedbacks", adminFeedbacksPage)
	webserver.AdminGET("/general-feedback", adminGeneralFeedbackPage)
	webserver.AdminPUT("/general-feedback/:id/status", updateGeneralFeedbackStatus)
	webserver.AdminGET("/contact-messages", adminContactMessagesPage)
	webserver.AdminPUT("/contact-messages/:id/status", updateContactMessageStatus)
}

// adminFeedbackRow joins product feedback with the author and product
// names for display.
type adminFeedbackRow struct {
	domain.Feedback
	UserName    string `gorm:"column:user_name"`
	ProductName string `gorm:"column:product_name"`
}

func adminFeedbacksPage(c echo.Context) error {
	var rows []adminFeedbackRow
	err := GetDB(c).Table("feedbacks f").
		Select("f.*, u.name as user_name, p.name as product_name").
		Joins("left join users u on u.id = f.user_id").
		Joins("left join products p on p.id = f.product_id").
		Order("f.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	return webserver.Render(c, "admin_feedbacks.tmpl", echo.Map{"Feedbacks": rows})
}

var messageStatuses = []domain.MessageStatus{
	domain.MessageStatusNew, domain.MessageStatusRead, domain.MessageStatusReplied,
}

func adminGeneralFeedbackPage(c echo.Context) error {
	var items []domain.GeneralFeedback
	if err := GetDB(c).Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return webserver.Render(c, "admin_general_feedback.tmpl", echo.Map{
		"Items":    items,
		"Statuses": messageStatuses,
	})
}

func adminContactMessagesPage(c echo.Context) error {
	var items []domain.ContactMessage
	if err := GetDB(c).Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return webserver.Render(c, "admin_contact_messages.tmpl", echo.Map{
		"Items":    items,
		"Statuses": messageStatuses,
	})
}

type messageStatusPayload struct {
	Status string `json:"status" form:"status"`
}

// setMessageStatus validates and writes a new / read / replied status
// on one inbox row.
func setMessageStatus(c echo.Context, model interface{}) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID", nil)
	}
	var payload messageStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status parameters", nil)
	}
	if !domain.ValidMessageStatus(payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown message status", payload.Status)
	}

	result := GetDB(c).Model(model).
		Where("id = ?", id).
		Update("status", domain.MessageStatus(payload.Status))
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update message", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
	}
	return ok(c, echo.Map{"id": cast.ToString(id), "status": payload.Status})
}

func updateGeneralFeedbackStatus(c echo.Context) error {
	return setMessageStatus(c, &domain.GeneralFeedback{})
}

func updateContactMessageStatus(c echo.Context) error {
	return setMessageStatus(c, &domain.ContactMessage{})
}
