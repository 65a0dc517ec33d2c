package format_test

import (
	"strings"
	"testing"

	"haci/internal/format"
)

func TestASCIITable(t *testing.T) {
	out := format.NewTable(format.ASCII).
		Header("Severity", "Finding", "Confidence").
		Row("critical", "Pool reduced from 10 to 5", 98).
		Row("high", "47 HTTP 502 errors in 1h", 99).
		String()

	for _, want := range []string{"Severity", "Pool reduced from 10 to 5", "98"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "─") {
		t.Errorf("ASCII mode should use box-drawing characters:\n%s", out)
	}
}

func TestMarkdownTable(t *testing.T) {
	out := format.NewTable(format.Markdown).
		Header("Tool", "Summary").
		Row("datadog_logs_search", "Found 8 log entries").
		String()

	if !strings.Contains(out, "| Tool") {
		t.Errorf("markdown mode should pipe-delimit cells:\n%s", out)
	}
	if strings.Contains(out, "─") {
		t.Errorf("markdown mode should not use box-drawing characters:\n%s", out)
	}
}

func TestFooter(t *testing.T) {
	out := format.NewTable(format.ASCII).
		Header("Phase", "Steps").
		Row("think", 1).
		Row("act", 2).
		Footer("total", 3).
		String()
	if !strings.Contains(out, "TOTAL") && !strings.Contains(out, "total") {
		t.Errorf("expected footer row:\n%s", out)
	}
}

func TestKeyValue(t *testing.T) {
	out := format.KeyValue(format.ASCII,
		[2]string{"Status", "Completed"},
		[2]string{"Confidence", "94"},
	)
	if !strings.Contains(out, "Status") || !strings.Contains(out, "94") {
		t.Errorf("missing pairs in output:\n%s", out)
	}
}
