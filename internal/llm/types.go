package llm

// Hypothesis is a candidate explanation produced during THINK.
// Confidence is the model's prior belief on [0,100].
type Hypothesis struct {
	Statement      string   `json:"statement" yaml:"statement"`
	Confidence     float64  `json:"confidence" yaml:"confidence"`
	EvidenceNeeded []string `json:"evidence_needed,omitempty" yaml:"evidence_needed"`
}

// ToolCall names a tool to invoke during ACT, with its parameters.
type ToolCall struct {
	Tool   string         `json:"tool" yaml:"tool"`
	Params map[string]any `json:"params,omitempty" yaml:"params"`
}

// Finding is one piece of analyzed evidence from OBSERVE.
// Severity is one of critical, high, medium, low.
type Finding struct {
	Statement  string  `json:"statement" yaml:"statement"`
	Severity   string  `json:"severity" yaml:"severity"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Resolution is the recommended fix attached to an identified root cause.
type Resolution struct {
	ImmediateAction      string `json:"immediate_action" yaml:"immediate_action"`
	Command              string `json:"command,omitempty" yaml:"command"`
	ExpectedRecoveryTime string `json:"expected_recovery_time,omitempty" yaml:"expected_recovery_time"`
	RiskLevel            string `json:"risk_level" yaml:"risk_level"`
}

// Alternative is a fallback remediation considered but not recommended first.
type Alternative struct {
	Action    string `json:"action" yaml:"action"`
	RiskLevel string `json:"risk_level" yaml:"risk_level"`
}

// ToolSpec describes one available tool for the THINK prompt.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolOutcome is the ACT-phase evidence handed to OBSERVE.
// Payload carries the raw tool response as a JSON string.
type ToolOutcome struct {
	Tool    string `json:"tool"`
	Summary string `json:"summary"`
	Payload string `json:"payload"`
}

// ThinkRequest asks the model to form hypotheses and plan tool calls.
type ThinkRequest struct {
	Ticket        string
	Iteration     int
	Tools         []ToolSpec
	PriorFindings []Finding
}

// ThinkResponse is the THINK phase output.
type ThinkResponse struct {
	Hypotheses []Hypothesis `json:"hypotheses" yaml:"hypotheses"`
	ToolPlan   []ToolCall   `json:"tool_plan" yaml:"tool_plan"`
	Reasoning  string       `json:"reasoning,omitempty" yaml:"reasoning"`
}

// ObserveRequest asks the model to analyze the gathered evidence.
type ObserveRequest struct {
	Ticket    string
	Iteration int
	Outcomes  []ToolOutcome
}

// ObserveResponse is the OBSERVE phase output.
type ObserveResponse struct {
	Findings     []Finding `json:"findings" yaml:"findings"`
	Patterns     []string  `json:"patterns,omitempty" yaml:"patterns"`
	Correlations []string  `json:"correlations,omitempty" yaml:"correlations"`
}

// EvaluateRequest asks the model to judge whether the root cause is known.
type EvaluateRequest struct {
	Ticket     string
	Iteration  int
	Hypotheses []Hypothesis
	Findings   []Finding
}

// EvaluateResponse is the EVALUATE phase output. Confidence is the
// model's overall belief on [0,100] that the root cause is correct.
type EvaluateResponse struct {
	RootCauseIdentified bool          `json:"root_cause_identified" yaml:"root_cause_identified"`
	RootCause           string        `json:"root_cause" yaml:"root_cause"`
	Confidence          float64       `json:"confidence" yaml:"confidence"`
	Resolution          *Resolution   `json:"resolution,omitempty" yaml:"resolution"`
	Alternatives        []Alternative `json:"alternatives,omitempty" yaml:"alternatives"`
}
