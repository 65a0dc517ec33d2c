package display

import "testing"

func TestPhase(t *testing.T) {
	if got := Phase("think"); got != "Think" {
		t.Errorf("Phase(think) = %q", got)
	}
	if got := Phase("EVALUATE"); got != "Evaluate" {
		t.Errorf("Phase(EVALUATE) = %q", got)
	}
	if got := Phase("mystery"); got != "mystery" {
		t.Errorf("unknown phase should pass through, got %q", got)
	}
}

func TestPhaseTagline(t *testing.T) {
	if got := PhaseTagline("act"); got != "Act - Gathering Evidence" {
		t.Errorf("PhaseTagline(act) = %q", got)
	}
	if got := PhaseTagline("mystery"); got != "mystery" {
		t.Errorf("unknown phase tagline should pass through, got %q", got)
	}
}

func TestActionName(t *testing.T) {
	if got := ActionName("execute_with_review"); got != "Execute With Review" {
		t.Errorf("ActionName = %q", got)
	}
	if got := ActionName("xx"); got != "xx" {
		t.Errorf("unknown action should pass through, got %q", got)
	}
}

func TestActionDescription(t *testing.T) {
	if ActionDescription("auto_execute") == "" {
		t.Error("expected description for auto_execute")
	}
	if ActionDescription("xx") != "" {
		t.Error("unknown action should yield empty description")
	}
}

func TestSeverity(t *testing.T) {
	if got := Severity("critical"); got != "Critical" {
		t.Errorf("Severity(critical) = %q", got)
	}
	if got := SeverityMarker("high"); got != "[! ]" {
		t.Errorf("SeverityMarker(high) = %q", got)
	}
	if got := SeverityMarker("weird"); got != "[~ ]" {
		t.Errorf("unknown severity marker = %q, want medium", got)
	}
}

func TestProvider(t *testing.T) {
	if got := Provider("canned"); got != "Canned responses (no API key)" {
		t.Errorf("Provider(canned) = %q", got)
	}
}

func TestStatus(t *testing.T) {
	if got := Status("escalated"); got != "Escalated" {
		t.Errorf("Status(escalated) = %q", got)
	}
}
