package llm

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an SRE incident investigator. You reason about production
incidents step by step and always answer with a single JSON object matching the
requested schema. No prose outside the JSON.`

func thinkPrompt(req ThinkRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Incident ticket:\n%s\n\n", req.Ticket)
	fmt.Fprintf(&b, "Investigation iteration: %d\n\n", req.Iteration)
	b.WriteString("Available tools:\n")
	for _, t := range req.Tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	if len(req.PriorFindings) > 0 {
		b.WriteString("\nFindings from earlier iterations:\n")
		for _, f := range req.PriorFindings {
			fmt.Fprintf(&b, "- [%s, confidence %.0f] %s\n", f.Severity, f.Confidence, f.Statement)
		}
	}
	b.WriteString(`
Form hypotheses about the root cause and plan which tools to call next.
Respond with JSON:
{
  "hypotheses": [{"statement": "...", "confidence": 0-100, "evidence_needed": ["..."]}],
  "tool_plan": [{"tool": "<tool name>", "params": {}}],
  "reasoning": "..."
}`)
	return b.String()
}

func observePrompt(req ObserveRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Incident ticket:\n%s\n\n", req.Ticket)
	b.WriteString("Tool results gathered this iteration:\n")
	for _, o := range req.Outcomes {
		fmt.Fprintf(&b, "\n## %s\nSummary: %s\nPayload:\n%s\n", o.Tool, o.Summary, o.Payload)
	}
	b.WriteString(`
Analyze the evidence. Respond with JSON:
{
  "findings": [{"statement": "...", "severity": "critical|high|medium|low", "confidence": 0-100}],
  "patterns": ["..."],
  "correlations": ["..."]
}`)
	return b.String()
}

func evaluatePrompt(req EvaluateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Incident ticket:\n%s\n\n", req.Ticket)
	b.WriteString("Hypotheses under consideration:\n")
	for _, h := range req.Hypotheses {
		fmt.Fprintf(&b, "- [prior %.0f] %s\n", h.Confidence, h.Statement)
	}
	b.WriteString("\nFindings so far:\n")
	for _, f := range req.Findings {
		fmt.Fprintf(&b, "- [%s, confidence %.0f] %s\n", f.Severity, f.Confidence, f.Statement)
	}
	b.WriteString(`
Judge whether the root cause is identified and how confident you are (0-100).
If identified, recommend a resolution. Respond with JSON:
{
  "root_cause_identified": true|false,
  "root_cause": "...",
  "confidence": 0-100,
  "resolution": {"immediate_action": "...", "command": "...", "expected_recovery_time": "...", "risk_level": "low|medium|high"},
  "alternatives": [{"action": "...", "risk_level": "low|medium|high"}]
}`)
	return b.String()
}
