package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/myrjola/fitcoach/internal/coach"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/export"
)

type exportFormat struct {
	File        string
	Label       string
	ContentType string
	ext         string
	write       func(io.Writer, export.Document) error
}

//nolint:gochecknoglobals // download table.
var exportFormats = []exportFormat{
	{
		File:        "plan.csv",
		Label:       "Plan as CSV",
		ContentType: export.ContentTypeCSV,
		ext:         "csv",
		write: func(w io.Writer, d export.Document) error {
			return export.WriteCSV(w, d.Plan)
		},
	},
	{
		File:        "plan.txt",
		Label:       "Plan as text",
		ContentType: export.ContentTypeText,
		ext:         "txt",
		write:       export.WriteText,
	},
	{
		File:        "plan.xlsx",
		Label:       "Plan as Excel workbook",
		ContentType: export.ContentTypeXLSX,
		ext:         "xlsx",
		write:       export.WriteXLSX,
	},
	{
		File:        "report.txt",
		Label:       "Progress report",
		ContentType: export.ContentTypeText,
		ext:         "txt",
		write:       export.WriteReport,
	},
}

type exportTemplateData struct {
	BaseTemplateData
	Formats  []exportFormat
	HasPlan  bool
	Document export.Document
}

func (app *application) exportGET(w http.ResponseWriter, r *http.Request) {
	data := exportTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Formats:          exportFormats,
		HasPlan:          false,
		Document:         export.Document{}, //nolint:exhaustruct // filled below when a plan exists.
	}
	doc, err := app.coachService.Document(r.Context())
	switch {
	case err == nil:
		data.HasPlan = true
		data.Document = doc
	case !errors.Is(err, coach.ErrNotFound):
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "export", data)
}

// exportFileGET serves one of the plan downloads. The file is rendered fully before anything is written so that
// failures still produce an error page.
func (app *application) exportFileGET(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	var format *exportFormat
	for i := range exportFormats {
		if exportFormats[i].File == file {
			format = &exportFormats[i]
			break
		}
	}
	if format == nil {
		app.notFound(w, r)
		return
	}

	doc, err := app.coachService.Document(r.Context())
	if err != nil {
		app.visitorError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err = format.write(&buf, doc); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render export", slog.String("file", file)))
		return
	}

	w.Header().Set("Content-Type", format.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s\"", export.Filename(format.ext, doc.GeneratedAt)))
	if _, err = buf.WriteTo(w); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to write export", errors.SlogError(err))
	}
}

// exportDataGET streams an SQLite database holding everything stored about the visitor.
func (app *application) exportDataGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exportPath, err := app.coachService.ExportVisitorData(ctx, app.exportDir)
	if err != nil {
		app.visitorError(w, r, err)
		return
	}
	defer func() {
		if removeErr := os.Remove(exportPath); removeErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remove temporary export file",
				slog.String("path", exportPath), errors.SlogError(removeErr))
		}
	}()

	file, err := os.Open(exportPath)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "open export file"))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelWarn, "failed to close export file",
				slog.String("path", exportPath), errors.SlogError(closeErr))
		}
	}()

	w.Header().Set("Content-Type", "application/x-sqlite3")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filepath.Base(exportPath)))
	if _, err = io.Copy(w, file); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "failed to stream export file to client",
			slog.String("path", exportPath), errors.SlogError(err))
	}
}
