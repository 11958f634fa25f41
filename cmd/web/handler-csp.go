package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/myrjola/fitcoach/internal/errors"
)

const maxCSPReportBytes = 64 * 1024

// cspReport is the part of a violation report we log. Browsers send it either as a legacy report-uri document or
// as the body of a Reporting API report.
type cspReport struct {
	DocumentURL        string `json:"documentURL"`
	BlockedURL         string `json:"blockedURL"`
	EffectiveDirective string `json:"effectiveDirective"`
	Disposition        string `json:"disposition"`
	SourceFile         string `json:"sourceFile"`
	LineNumber         int    `json:"lineNumber"`
	Sample             string `json:"sample"`
}

type legacyCSPReport struct {
	Report struct {
		DocumentURI       string `json:"document-uri"`
		BlockedURI        string `json:"blocked-uri"`
		ViolatedDirective string `json:"violated-directive"`
		EffectiveDir      string `json:"effective-directive"`
		Disposition       string `json:"disposition"`
		SourceFile        string `json:"source-file"`
		LineNumber        int    `json:"line-number"`
		ScriptSample      string `json:"script-sample"`
	} `json:"csp-report"`
}

func (l legacyCSPReport) normalize() cspReport {
	directive := l.Report.EffectiveDir
	if directive == "" {
		directive = l.Report.ViolatedDirective
	}
	return cspReport{
		DocumentURL:        l.Report.DocumentURI,
		BlockedURL:         l.Report.BlockedURI,
		EffectiveDirective: directive,
		Disposition:        l.Report.Disposition,
		SourceFile:         l.Report.SourceFile,
		LineNumber:         l.Report.LineNumber,
		Sample:             l.Report.ScriptSample,
	}
}

type reportingAPIReport struct {
	Type string    `json:"type"`
	Body cspReport `json:"body"`
}

// parseCSPReports decodes the reports in body according to mediaType.
func parseCSPReports(mediaType string, body []byte) ([]cspReport, error) {
	if mediaType == "application/reports+json" {
		var batch []reportingAPIReport
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, errors.Wrap(err, "unmarshal reporting api batch")
		}
		reports := make([]cspReport, 0, len(batch))
		for _, r := range batch {
			if r.Type == "csp-violation" {
				reports = append(reports, r.Body)
			}
		}
		return reports, nil
	}

	var legacy legacyCSPReport
	if err := json.Unmarshal(body, &legacy); err != nil {
		return nil, errors.Wrap(err, "unmarshal csp report")
	}
	return []cspReport{legacy.normalize()}, nil
}

// cspViolation logs the violation reports browsers send for the Content-Security-Policy set in secureHeaders.
func (app *application) cspViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "", "application/csp-report", "application/json", "application/reports+json":
	default:
		app.logger.LogAttrs(ctx, slog.LevelWarn, "csp violation report with unexpected content type",
			slog.String("content_type", mediaType))
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCSPReportBytes))
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "read csp violation report", errors.SlogError(err))
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	reports, err := parseCSPReports(mediaType, body)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "parse csp violation report", errors.SlogError(err),
			slog.String("body", string(body)))
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	for _, report := range reports {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "csp violation",
			slog.String("document_url", report.DocumentURL),
			slog.String("effective_directive", report.EffectiveDirective),
			slog.String("blocked_url", report.BlockedURL),
			slog.String("source_file", report.SourceFile),
			slog.Int("line_number", report.LineNumber),
			slog.String("sample", report.Sample),
			slog.String("disposition", report.Disposition),
			slog.String("user_agent", r.Header.Get("User-Agent")))
	}
	w.WriteHeader(http.StatusNoContent)
}
