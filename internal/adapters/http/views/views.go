// Package views holds the embedded HTML templates and their helper functions.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/format"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// Layout wraps every authenticated page
const Layout = "layouts/main"

// New returns the template engine over the embedded templates
func New() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

// Config is the fiber configuration shared by the server and tests
func Config(appName string, errorHandler fiber.ErrorHandler) fiber.Config {
	return fiber.Config{
		AppName:           appName,
		Views:             New(),
		ViewsLayout:       Layout,
		PassLocalsToViews: true,
		ErrorHandler:      errorHandler,
	}
}

// Funcs are the helpers available in every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"amount":    format.Amount,
		"money":     format.Money,
		"percent":   format.Percent,
		"date":      format.Date,
		"datetime":  format.DateTime,
		"fixed":     func(a domain.Amount) string { return a.Fixed() },
		"progress":  domain.ProgressPercent,
		"remaining": domain.RemainingDeposits,
	}
}
