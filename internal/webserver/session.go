package webserver

import (
	"encoding/gob"
	"net/http"
	"strings"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionName = "campusmarket"

// FlashMessage is a one-shot notice rendered on the next page view.
type FlashMessage struct {
	Category string // success / info / warning / danger
	Message  string
}

func init() {
	gob.Register(FlashMessage{})
}

// SetLogin stores the user identity in the session.
func SetLogin(c echo.Context, user *domain.User) {
	s, _ := session.Get(sessionName, c)
	s.Options.HttpOnly = true
	s.Options.SameSite = http.SameSiteLaxMode
	s.Options.Path = "/"
	s.Values["user_id"] = user.ID
	s.Values["user_name"] = user.Name
	s.Values["user_email"] = user.Email
	s.Values["user_role"] = user.Role
	if err := s.Save(c.Request(), c.Response()); err != nil {
		zap.L().Error("failed to save session", zap.Error(err))
	}
}

// ClearLogin drops the whole session.
func ClearLogin(c echo.Context) {
	s, _ := session.Get(sessionName, c)
	s.Options.MaxAge = -1
	s.Values = map[interface{}]interface{}{}
	_ = s.Save(c.Request(), c.Response())
}

// CurrentUserID returns the logged-in user's id, if any.
func CurrentUserID(c echo.Context) (int64, bool) {
	s, _ := session.Get(sessionName, c)
	id, ok := s.Values["user_id"].(int64)
	return id, ok
}

func CurrentUserName(c echo.Context) string {
	s, _ := session.Get(sessionName, c)
	name, _ := s.Values["user_name"].(string)
	return name
}

func CurrentUserRole(c echo.Context) string {
	s, _ := session.Get(sessionName, c)
	role, _ := s.Values["user_role"].(string)
	return role
}

// SetSessionName updates the cached display name after a profile edit.
func SetSessionName(c echo.Context, name string) {
	s, _ := session.Get(sessionName, c)
	s.Values["user_name"] = name
	_ = s.Save(c.Request(), c.Response())
}

// Flash queues a one-shot notice.
func Flash(c echo.Context, category, message string) {
	s, _ := session.Get(sessionName, c)
	s.AddFlash(FlashMessage{Category: category, Message: message})
	_ = s.Save(c.Request(), c.Response())
}

// Flashes drains queued notices.
func Flashes(c echo.Context) []FlashMessage {
	s, _ := session.Get(sessionName, c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save(c.Request(), c.Response())
	}
	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(FlashMessage); ok {
			out = append(out, fm)
		}
	}
	return out
}

// wantsJSON reports whether the client expects a JSON answer rather
// than an HTML redirect.
func wantsJSON(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMEApplicationJSON)
}

// LoginRequired gates routes behind a session. JSON clients get a 401
// payload; browsers are flashed and sent to the login page.
func LoginRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUserID(c); !ok {
			if wantsJSON(c) {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false, "message": "Please login first",
				})
			}
			Flash(c, "warning", "Please login to continue")
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// AdminRequired re-checks the role against the database on every
// request so a demoted admin loses access immediately.
func AdminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := CurrentUserID(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		var user domain.User
		if err := GetDB(c).Select("role").Where("id = ?", uid).First(&user).Error; err != nil || !user.IsAdmin() {
			if wantsJSON(c) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false, "message": "Admin privileges required",
				})
			}
			Flash(c, "danger", "Access denied. Admin privileges required.")
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}
