package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campusworks/campusmarket/internal/domain"
	"github.com/campusworks/campusmarket/internal/webserver"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

func registerUserRoutes() {
	webserver.AdminGET("/users", adminUsersPage)
	webserver.AdminDELETE("/users/:id", deleteUser)
	webserver.AdminGET("/users/export", exportUsersCSV)
}

func adminUsersPage(c echo.Context) error {
	var users []domain.User
	if err := GetDB(c).Order("created_at desc").Find(&users).Error; err != nil {
		return err
	}
	return webserver.Render(c, "admin_users.tmpl", echo.Map{"Users": users})
}

// deleteUser removes an account and, through the cascades, its cart,
// orders and product listings. Admins cannot delete themselves.
func deleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	if uid, _ := webserver.CurrentUserID(c); uid == id {
		return fail(c, http.StatusBadRequest, "SELF_DELETE", "You cannot delete your own account", nil)
	}
	result := GetDB(c).Delete(&domain.User{}, id)
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	return ok(c, echo.Map{"deleted": cast.ToString(id)})
}

type userCSVRow struct {
	ID        string `csv:"id"`
	Name      string `csv:"name"`
	Email     string `csv:"email"`
	Phone     string `csv:"phone"`
	Role      string `csv:"role"`
	CreatedAt string `csv:"created_at"`
}

func exportUsersCSV(c echo.Context) error {
	var users []domain.User
	if err := GetDB(c).Order("id").Find(&users).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}

	rows := make([]userCSVRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userCSVRow{
			ID:        cast.ToString(u.ID),
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.Role,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="users-%s.csv"`, time.Now().Format("20060102")))
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}
