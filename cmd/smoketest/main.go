package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/myrjola/fitcoach/internal/e2etest"
	"github.com/myrjola/fitcoach/internal/errors"
	"github.com/myrjola/fitcoach/internal/logging"
	"github.com/myrjola/fitcoach/internal/testhelpers"
)

const daysPerWeek = 7

// TestPlan fills in the profile form and checks that a full week is generated.
func TestPlan(client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	if doc, err = client.SubmitForm(ctx, doc, "/profile", map[string]string{
		"Name":          "Smoke Test",
		"Fitness level": "Intermediate",
		"Goal":          "Fat Loss",
	}); err != nil {
		return fmt.Errorf("submit profile: %w", err)
	}
	if got := doc.Find("article.day").Length(); got != daysPerWeek {
		return errors.New("unexpected number of plan days", slog.Int("days", got))
	}
	if _, _, err = client.GetBody(ctx, "/api/v1/catalog"); err != nil {
		return fmt.Errorf("get catalog: %w", err)
	}
	// Clean up after ourselves. The delete form lives on the landing page.
	if doc, err = client.GetDoc(ctx, "/"); err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	if _, err = client.SubmitForm(ctx, doc, "/profile/delete", nil); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPlan(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing plan", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
