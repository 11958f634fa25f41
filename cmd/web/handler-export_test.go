package main

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/myrjola/fitcoach/internal/e2etest"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

func Test_application_export(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	t.Run("Nothing to export without a profile", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/export")
		if err != nil {
			t.Fatalf("Failed to get export page: %v", err)
		}
		if got := doc.Find(".downloads a").Length(); got != 0 {
			t.Errorf("got %d download links, want 0", got)
		}
		resp, err := client.Get(ctx, "/export/plan.csv")
		if err != nil {
			t.Fatalf("Failed to get csv: %v", err)
		}
		_ = resp.Body.Close()
		if resp.Request.URL.Path != "/" {
			t.Errorf("download without profile ended at %s, want /", resp.Request.URL.Path)
		}
	})

	submitProfile(t, client, testProfile)

	doc, err := client.GetDoc(ctx, "/export")
	if err != nil {
		t.Fatalf("Failed to get export page: %v", err)
	}
	if got := doc.Find(".downloads a").Length(); got != 5 {
		t.Errorf("got %d download links, want 5", got)
	}

	tests := []struct {
		path        string
		contentType string
		ext         string
		contains    string
	}{
		{path: "/export/plan.csv", contentType: "text/csv", ext: ".csv", contains: "Monday,Chest,Bench Press"},
		{path: "/export/plan.txt", contentType: "text/plain; charset=utf-8", ext: ".txt", contains: "Alex"},
		{path: "/export/report.txt", contentType: "text/plain; charset=utf-8", ext: ".txt", contains: "Alex"},
		{
			path:        "/export/plan.xlsx",
			contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			ext:         ".xlsx",
			contains:    "PK",
		},
		{path: "/export/data.sqlite3", contentType: "application/x-sqlite3", ext: ".sqlite3", contains: "SQLite format 3"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body, header, err := client.GetBody(ctx, tt.path)
			if err != nil {
				t.Fatalf("Failed to download: %v", err)
			}
			if got := header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			disposition := header.Get("Content-Disposition")
			if !strings.HasPrefix(disposition, "attachment; filename=") || !strings.HasSuffix(disposition, tt.ext+`"`) {
				t.Errorf("Content-Disposition = %q", disposition)
			}
			if !bytes.Contains(body, []byte(tt.contains)) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}

	t.Run("CSV lists every day", func(t *testing.T) {
		body, _, err := client.GetBody(ctx, "/export/plan.csv")
		if err != nil {
			t.Fatalf("Failed to download: %v", err)
		}
		records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
		if err != nil {
			t.Fatalf("Failed to parse csv: %v", err)
		}
		// Header, five training days with four exercises and two rest days.
		if got, want := len(records), 1+5*4+2; got != want {
			t.Errorf("got %d records, want %d", got, want)
		}
	})

	t.Run("Unknown format", func(t *testing.T) {
		resp, err := client.Get(ctx, "/export/plan.pdf")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}
