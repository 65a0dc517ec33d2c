// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, streamed events, logs, and docs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import "strings"

// --- Phases ---

var phases = map[string]string{
	"think":    "Think",
	"act":      "Act",
	"observe":  "Observe",
	"evaluate": "Evaluate",
}

var phaseTaglines = map[string]string{
	"think":    "Forming Hypotheses",
	"act":      "Gathering Evidence",
	"observe":  "Analyzing Evidence",
	"evaluate": "Confidence Assessment",
}

// Phase returns the human-readable name for a phase tag.
// Unknown tags are returned as-is.
func Phase(tag string) string {
	if name, ok := phases[strings.ToLower(tag)]; ok {
		return name
	}
	return tag
}

// PhaseTagline returns the banner line for a phase, e.g.
// "think" -> "Think - Forming Hypotheses".
func PhaseTagline(tag string) string {
	name := Phase(tag)
	if line, ok := phaseTaglines[strings.ToLower(tag)]; ok {
		return name + " - " + line
	}
	return name
}

// --- Actions ---

var actions = map[string]string{
	"auto_execute":         "Auto-Execute",
	"execute_with_review":  "Execute With Review",
	"require_approval":     "Require Approval",
	"continue_or_escalate": "Continue Investigation",
}

var actionDescriptions = map[string]string{
	"auto_execute":         "confidence in the top band; resolution executes automatically",
	"execute_with_review":  "executing with post-action review notification",
	"require_approval":     "waiting for human approval before executing",
	"continue_or_escalate": "need more evidence, or escalate to a human operator",
}

// ActionName returns the human-readable name for a gate action code.
func ActionName(code string) string {
	if name, ok := actions[code]; ok {
		return name
	}
	return code
}

// ActionDescription returns the one-line explanation shown next to a decision.
func ActionDescription(code string) string {
	if d, ok := actionDescriptions[code]; ok {
		return d
	}
	return ""
}

// --- Severities ---

var severities = map[string]string{
	"critical": "Critical",
	"high":     "High",
	"medium":   "Medium",
	"low":      "Low",
}

var severityMarkers = map[string]string{
	"critical": "[!!]",
	"high":     "[! ]",
	"medium":   "[~ ]",
	"low":      "[. ]",
}

// Severity returns the human-readable name for a finding severity.
func Severity(code string) string {
	if name, ok := severities[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// SeverityMarker returns a fixed-width marker for terminal listings.
// Unknown severities get the medium marker.
func SeverityMarker(code string) string {
	if m, ok := severityMarkers[strings.ToLower(code)]; ok {
		return m
	}
	return severityMarkers["medium"]
}

// --- Providers ---

var providers = map[string]string{
	"anthropic": "Claude (Anthropic)",
	"openai":    "GPT (OpenAI)",
	"canned":    "Canned responses (no API key)",
}

// Provider returns the human-readable name for an adapter provider code.
func Provider(code string) string {
	if name, ok := providers[code]; ok {
		return name
	}
	return code
}

// --- Statuses ---

var statuses = map[string]string{
	"completed": "Completed",
	"failed":    "Failed",
	"escalated": "Escalated",
	"running":   "Running",
}

// Status returns the human-readable name for an investigation status.
func Status(code string) string {
	if name, ok := statuses[code]; ok {
		return name
	}
	return code
}
