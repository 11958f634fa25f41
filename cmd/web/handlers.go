package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/fitcoach/internal/contexthelpers"
	"github.com/myrjola/fitcoach/internal/errors"
)

// formatFloat formats a float to remove trailing zeros and unnecessary precision.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// weekdaySlug is the URL segment of a weekday, e.g. "monday".
func weekdaySlug(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// cssClass turns a label like "Push-ups" or "Fat Loss" into "push-ups" or "fat-loss".
func cssClass(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// baseTemplateFuncs returns the base template.FuncMap with placeholder implementations.
// Context-dependent functions (nonce, mdToHTML) must be overridden with actual implementations.
func (app *application) baseTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"mdToHTML": func() string {
			panic("not implemented")
		},
		"formatFloat": formatFloat,
		"weekdaySlug": weekdaySlug,
		"cssClass":    cssClass,
	}
}

// contextTemplateFuncs returns template.FuncMap with context-dependent function implementations.
func (app *application) contextTemplateFuncs(ctx context.Context) template.FuncMap {
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"mdToHTML": func(markdown string) template.HTML {
			return app.renderMarkdownToHTML(ctx, markdown)
		},
	}
}

// renderMarkdownToHTML converts markdown into HTML. Raw HTML in the source is escaped by goldmark's defaults.
func (app *application) renderMarkdownToHTML(ctx context.Context, markdown string) template.HTML {
	var buf bytes.Buffer
	if err := app.markdown.Convert([]byte(markdown), &buf); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "render markdown", errors.SlogError(err))
		return template.HTML(template.HTMLEscapeString(markdown)) //nolint:gosec // escaped above.
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark omits raw HTML unless configured otherwise.
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside ui/templates/pages folder. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	var err error
	// The FuncMap has to exist before parsing. The render function overrides the context-dependent entries.
	t := template.New(pageName).Funcs(app.baseTemplateFuncs())
	if t, err = t.ParseFS(app.templateFS, "base.gohtml", fmt.Sprintf("pages/%s/*.gohtml", pageName)); err != nil {
		return nil, fmt.Errorf("new template: %w", err)
	}
	return t, nil
}

func (app *application) renderToBuf(ctx context.Context, file string, data any) (*bytes.Buffer, error) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		return nil, fmt.Errorf("retrieve page template %s: %w", file, err)
	}

	buf := new(bytes.Buffer)
	t.Funcs(app.contextTemplateFuncs(ctx))
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", file, err)
	}

	return buf, nil
}

/*
 * render renders the template residing in the /ui/templates/pages/{pageName} folder from the repository root and writes
 * it to the response writer.
 */
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	var (
		buf *bytes.Buffer
		err error
	)

	if buf, err = app.renderToBuf(r.Context(), pageName, data); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "render page", errors.SlogError(err),
			slog.String("page", pageName))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
