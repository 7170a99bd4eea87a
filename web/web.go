// Package web provides the embedded web UI for numcalc.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// recentLimit caps the history shown on the dashboard.
const recentLimit = 10

// Handler serves the web UI pages.
type Handler struct {
	store   *store.Store
	funcMap template.FuncMap
}

// pageData wraps all page-specific data with common fields.
type pageData struct {
	NavActive string
	Data      interface{}
}

// New creates a new web UI handler.
func New(s *store.Store) *Handler {
	return &Handler{
		store: s,
		funcMap: template.FuncMap{
			"timeAgo":    timeAgo,
			"formatTime": formatTime,
			"stateClass": stateClass,
			"stateIcon":  stateIcon,
			"truncate":   truncate,
		},
	}
}

func (h *Handler) render(c *fiber.Ctx, page string, navActive string, data interface{}) error {
	// Parse templates fresh each time for the page-specific template
	// This avoids the Go template issue where define blocks conflict across pages
	tmpl := template.Must(
		template.New("").Funcs(h.funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page),
	)

	pd := pageData{
		NavActive: navActive,
		Data:      data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, pd); err != nil {
		return c.Status(500).SendString(fmt.Sprintf("template error: %v", err))
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

// Register adds web UI routes to the Fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/ui", h.dashboard)
	app.Post("/ui/evaluate", h.evaluate)
	app.Get("/ui/evaluations/:id", h.evaluationDetail)

	// Redirect root to UI
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ui")
	})
}

// --- Page Data Types ---

type dashboardContent struct {
	Recent    []*store.Evaluation
	Stats     store.Stats
	LastInput string
}

type evaluationDetailContent struct {
	Evaluation *store.Evaluation
}

type notFoundContent struct {
	Message string
}

// --- Page Handlers ---

func (h *Handler) dashboard(c *fiber.Ctx) error {
	recent := h.store.List()
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return h.render(c, "dashboard.html", "dashboard", dashboardContent{
		Recent:    recent,
		Stats:     h.store.Stats(),
		LastInput: c.Query("expression"),
	})
}

func (h *Handler) evaluate(c *fiber.Ctx) error {
	input := c.FormValue("expression")
	if strings.TrimSpace(input) == "" {
		return c.Redirect("/ui")
	}

	res, err := expr.EvaluateDetailed(input)
	ev := h.store.Record(input, "web", res, err)
	return c.Redirect("/ui/evaluations/" + ev.Name)
}

func (h *Handler) evaluationDetail(c *fiber.Ctx) error {
	ev, err := h.store.Get(c.Params("id"))
	if err != nil {
		return h.renderNotFound(c, err.Error())
	}
	return h.render(c, "evaluation.html", "dashboard", evaluationDetailContent{Evaluation: ev})
}

func (h *Handler) renderNotFound(c *fiber.Ctx, msg string) error {
	c.Status(404)
	return h.render(c, "notfound.html", "", notFoundContent{Message: msg})
}

// --- Template Helpers ---

func timeAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func stateClass(state store.EvaluationState) string {
	switch state {
	case store.EvaluationSucceeded:
		return "state-succeeded"
	case store.EvaluationFailed:
		return "state-failed"
	default:
		return ""
	}
}

func stateIcon(state store.EvaluationState) template.HTML {
	switch state {
	case store.EvaluationSucceeded:
		return "&#10003;"
	case store.EvaluationFailed:
		return "&#10007;"
	default:
		return "&#8226;"
	}
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
