package webapi

import (
	"net/http"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func feedbackPage(c echo.Context) error {
	return webserver.Render(c, "feedback.tmpl", echo.Map{
		"Ratings": []int{5, 4, 3, 2, 1},
	})
}

type generalFeedbackForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Subject string `form:"subject"`
	Message string `form:"message" validate:"required"`
	Rating  int    `form:"rating" validate:"omitempty,min=1,max=5"`
}

func feedbackSubmit(c echo.Context) error {
	var form generalFeedbackForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	fb := domain.GeneralFeedback{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
		Rating:  form.Rating,
		Status:  domain.MessageStatusNew,
	}
	if uid, ok := webserver.CurrentUserID(c); ok {
		fb.UserID = &uid
	}
	if fb.Rating == 0 {
		fb.Rating = 5
	}
	if err := webserver.GetDB(c).Create(&fb).Error; err != nil {
		zap.S().Errorf("failed to save feedback from %s: %s", form.Email, err)
		webserver.Flash(c, "danger", "Could not submit your feedback, please try again")
		return c.Redirect(http.StatusFound, "/feedback")
	}
	webserver.Flash(c, "success", "Thank you for your feedback!")
	return c.Redirect(http.StatusFound, "/")
}

func contactPage(c echo.Context) error {
	return webserver.Render(c, "contact.tmpl", echo.Map{
		"ContactEmail": webserver.Setting("site", "ContactEmail", "support@campus.com"),
	})
}

type contactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone"`
	Subject string `form:"subject" validate:"required"`
	Message string `form:"message" validate:"required"`
}

func contactSubmit(c echo.Context) error {
	var form contactForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	msg := domain.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Subject: form.Subject,
		Message: form.Message,
		Status:  domain.MessageStatusNew,
	}
	if uid, ok := webserver.CurrentUserID(c); ok {
		msg.UserID = &uid
	}
	if err := webserver.GetDB(c).Create(&msg).Error; err != nil {
		zap.S().Errorf("failed to save contact message from %s: %s", form.Email, err)
		webserver.Flash(c, "danger", "Could not send your message, please try again")
		return c.Redirect(http.StatusFound, "/contact")
	}
	webserver.AppCtx().Bus().Publish("contact.received", &msg)
	webserver.Flash(c, "success", "Your message has been sent. We will get back to you soon.")
	return c.Redirect(http.StatusFound, "/contact")
}
