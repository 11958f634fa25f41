package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/fitcoach/internal/e2etest"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

func Test_application_notFound(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	tests := []struct {
		name string
		path string
	}{
		{name: "Nonexistent path", path: "/nonexistent"},
		{name: "Unknown exercise", path: "/exercises/Handstand%20Walk"},
		{name: "Directory traversal", path: "/css/../../go.mod"},
		{name: "Static directory", path: "/css/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Get(ctx, tt.path)
			if err != nil {
				t.Fatalf("Failed to get %s: %v", tt.path, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
			}
			doc, err := goquery.NewDocumentFromReader(resp.Body)
			if err != nil {
				t.Fatalf("Failed to parse document: %v", err)
			}
			if got := doc.Find("h1").Text(); !strings.Contains(got, "Page not found") {
				t.Errorf("h1 = %q, want the custom 404 page", got)
			}
			if doc.Find("main a[href='/']").Length() == 0 {
				t.Error("expected a link home")
			}
		})
	}

	t.Run("Static files are served", func(t *testing.T) {
		_, header, err := client.GetBody(ctx, "/css/main.css")
		if err != nil {
			t.Fatalf("Failed to get stylesheet: %v", err)
		}
		if got := header.Get("Cache-Control"); !strings.Contains(got, "immutable") {
			t.Errorf("Cache-Control = %q", got)
		}
	})
}
