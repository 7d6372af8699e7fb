package webapi

import (
	"net/http"
	"strings"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/campusworks/campusmarket/pkg/common"
	"github.com/campusworks/campusmarket/pkg/metrics"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func loginPage(c echo.Context) error {
	if _, ok := webserver.CurrentUserID(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return webserver.Render(c, "login.tmpl", nil)
}

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// loginSubmit authenticates a browser session. JSON clients
// additionally get a bearer token for the /api routes.
func loginSubmit(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	jsonClient := strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	var user domain.User
	err := webserver.GetDB(c).Where("email = ?", strings.ToLower(form.Email)).First(&user).Error
	if err != nil || !common.CheckPassword(user.Password, form.Password) {
		if jsonClient {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid email or password"})
		}
		webserver.Flash(c, "danger", "Invalid email or password")
		return c.Redirect(http.StatusFound, "/login")
	}

	webserver.SetLogin(c, &user)
	metrics.Inc(metrics.MetricUserLogin)
	zap.S().Infof("user %s logged in", user.Email)

	if jsonClient {
		token, err := webserver.IssueToken(webserver.AppCtx().Config().Web.JwtSecret, &user)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "token": token, "user": user})
	}
	webserver.Flash(c, "success", "Login successful")
	if user.IsAdmin() {
		return c.Redirect(http.StatusFound, "/admin")
	}
	return c.Redirect(http.StatusFound, "/")
}

func registerPage(c echo.Context) error {
	if _, ok := webserver.CurrentUserID(c); ok {
		return c.Redirect(http.StatusFound, "/")
	}
	return webserver.Render(c, "register.tmpl", nil)
}

type registerForm struct {
	Name            string `form:"name" json:"name" validate:"required"`
	Email           string `form:"email" json:"email" validate:"required,email"`
	Phone           string `form:"phone" json:"phone"`
	Password        string `form:"password" json:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" validate:"required"`
}

func registerSubmit(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}
	if form.Password != form.ConfirmPassword {
		webserver.Flash(c, "danger", "Passwords do not match")
		return c.Redirect(http.StatusFound, "/register")
	}

	db := webserver.GetDB(c)
	email := strings.ToLower(strings.TrimSpace(form.Email))
	var count int64
	db.Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		webserver.Flash(c, "danger", "Email already registered")
		return c.Redirect(http.StatusFound, "/register")
	}

	hash, err := common.HashPassword(form.Password)
	if err != nil {
		return err
	}
	user := domain.User{
		Name:     strings.TrimSpace(form.Name),
		Email:    email,
		Phone:    form.Phone,
		Password: hash,
		Role:     domain.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		zap.S().Errorf("failed to register %s: %s", email, err)
		webserver.Flash(c, "danger", "Registration failed, please try again")
		return c.Redirect(http.StatusFound, "/register")
	}
	metrics.Inc(metrics.MetricUserRegister)
	webserver.Flash(c, "success", "Registration successful! Please login.")
	return c.Redirect(http.StatusFound, "/login")
}

func logout(c echo.Context) error {
	webserver.ClearLogin(c)
	webserver.Flash(c, "info", "You have been logged out")
	return c.Redirect(http.StatusFound, "/")
}

func profilePage(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	db := webserver.GetDB(c)

	var user domain.User
	if err := db.First(&user, uid).Error; err != nil {
		return err
	}
	var orders []domain.Order
	db.Where("user_id = ?", uid).Order("created_at desc").Limit(5).Find(&orders)
	var products []domain.Product
	db.Where("seller_id = ?", uid).Order("created_at desc").Find(&products)

	return webserver.Render(c, "profile.tmpl", echo.Map{
		"User":     user,
		"Orders":   orders,
		"Products": products,
	})
}

type profileForm struct {
	Name    string `form:"name" validate:"required"`
	Phone   string `form:"phone"`
	Address string `form:"address"`
}

func updateProfile(c echo.Context) error {
	uid, _ := webserver.CurrentUserID(c)
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	if err := c.Validate(&form); err != nil {
		return err
	}
	err := webserver.GetDB(c).Model(&domain.User{}).Where("id = ?", uid).
		Updates(map[string]interface{}{
			"name":    strings.TrimSpace(form.Name),
			"phone":   form.Phone,
			"address": form.Address,
		}).Error
	if err != nil {
		return err
	}
	webserver.SetSessionName(c, strings.TrimSpace(form.Name))
	webserver.Flash(c, "success", "Profile updated")
	return c.Redirect(http.StatusFound, "/profile")
}
