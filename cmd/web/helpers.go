package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/plan"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.render(w, r, http.StatusInternalServerError, "error", newBaseTemplateData(r))
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", newBaseTemplateData(r))
}

// visitorError redirects visitors without a profile to the landing page and treats everything else as a server
// error.
func (app *application) visitorError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, coach.ErrNotFound) {
		redirect(w, r, "/")
		return
	}
	app.serverError(w, r, err)
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parseWeekdayParam parses the "day" path parameter, e.g. "monday". On failure it responds with 404.
func (app *application) parseWeekdayParam(w http.ResponseWriter, r *http.Request) (time.Weekday, bool) {
	day := strings.ToLower(r.PathValue("day"))
	for _, weekday := range plan.Weekdays {
		if strings.ToLower(weekday.String()) == day {
			return weekday, true
		}
	}
	app.notFound(w, r)
	return 0, false
}
