//go:build e2e

package main

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"haci/internal/harness"
	"haci/internal/llm"
	"haci/internal/server"
	"haci/internal/tools"
)

func TestServeBrowser_StreamsInvestigation(t *testing.T) {
	adapter, err := llm.NewCannedAdapter()
	if err != nil {
		t.Fatal(err)
	}
	srv, err := server.New(server.Config{
		Harness: harness.Config{
			Adapter:  adapter,
			Registry: tools.NewMockRegistry(),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	t.Run("page loads", func(t *testing.T) {
		var title string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(ts.URL),
			chromedp.WaitReady("#go", chromedp.ByID),
			chromedp.Title(&title),
		)
		if err != nil {
			t.Fatalf("chromedp: %v", err)
		}
		if !strings.Contains(title, "Incident Investigation") {
			t.Errorf("title = %q", title)
		}
	})

	t.Run("investigation streams to completion", func(t *testing.T) {
		var stepsHTML, resultHTML string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(ts.URL),
			chromedp.WaitReady("#go", chromedp.ByID),
			chromedp.Click("#go", chromedp.ByID),
			chromedp.WaitVisible("#result", chromedp.ByID),
			chromedp.InnerHTML("#steps", &stepsHTML, chromedp.ByID),
			chromedp.InnerHTML("#result", &resultHTML, chromedp.ByID),
		)
		if err != nil {
			t.Fatalf("chromedp: %v", err)
		}

		for _, phase := range []string{"think", "act", "observe", "evaluate"} {
			if !strings.Contains(stepsHTML, phase) {
				t.Errorf("missing %s step in stream:\n%s", phase, stepsHTML)
			}
		}
		if !strings.Contains(resultHTML, "COMPLETED") {
			t.Errorf("result = %s", resultHTML)
		}
		if !strings.Contains(resultHTML, "94/100") {
			t.Errorf("expected confidence in result: %s", resultHTML)
		}
	})
}
