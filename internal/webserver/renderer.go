package webserver

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templatesFS embed.FS

// Renderer serves the embedded server-side templates.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
	tpl := template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"))
	return &Renderer{tpl: tpl}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tpl.ExecuteTemplate(w, name, data)
}

// Render executes a page template with the session context (flashes,
// identity) merged into data.
func Render(c echo.Context, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	data["Flashes"] = Flashes(c)
	data["SiteTitle"] = Setting("site", "SiteTitle", "Campus Marketplace")
	data["UserName"] = CurrentUserName(c)
	data["UserRole"] = CurrentUserRole(c)
	_, data["LoggedIn"] = CurrentUserID(c)
	return c.Render(200, name, data)
}
