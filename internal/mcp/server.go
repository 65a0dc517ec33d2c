// Package mcp exposes the investigation harness as MCP tools over
// stdio, so an agent can drive runs and watch them progress.
package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"haci/internal/harness"
	"haci/internal/logging"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultResultTimeout bounds get_result when the caller does not pass
// a timeout of its own.
var DefaultResultTimeout = 2 * time.Minute

// Server wraps the MCP SDK server and manages one investigation
// session at a time.
type Server struct {
	MCPServer *sdkmcp.Server

	base harness.Config

	mu      sync.Mutex
	session *Session
}

// NewServer builds the server. base is the runner template used for
// every started investigation.
func NewServer(base harness.Config) (*Server, error) {
	// Fail fast on a broken template.
	if _, err := harness.New(base); err != nil {
		return nil, err
	}
	s := &Server{base: base}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "haci", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "start_investigation",
		Description: "Start investigating an incident ticket. Runs in the background and returns a session ID.",
	}, s.handleStartInvestigation)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_steps",
		Description: "Read investigation steps. Returns all steps, or steps since a given index.",
	}, s.handleGetSteps)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_result",
		Description: "Get the final investigation result. Blocks until the run finishes or the timeout expires.",
	}, s.handleGetResult)
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// Shutdown cancels the active session, if any.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.Cancel()
		s.session = nil
	}
}

// SessionID returns the active session's ID, or empty.
func (s *Server) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.ID
}

// --- Tool input/output types ---

type startInvestigationInput struct {
	Ticket string `json:"ticket" jsonschema:"incident ticket text to investigate"`
	Force  bool   `json:"force,omitempty" jsonschema:"cancel any running session and start fresh"`
}

type startInvestigationOutput struct {
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"`
	Status    string `json:"status"`
}

type getStepsInput struct {
	SessionID string `json:"session_id" jsonschema:"session ID from start_investigation"`
	Since     int    `json:"since,omitempty" jsonschema:"return steps from this index onward (0-based)"`
}

type getStepsOutput struct {
	Steps  []harness.Step `json:"steps"`
	Total  int            `json:"total"`
	Status string         `json:"status"`
}

type getResultInput struct {
	SessionID string `json:"session_id" jsonschema:"session ID from start_investigation"`
	TimeoutMS int    `json:"timeout_ms,omitempty" jsonschema:"max wait in milliseconds (0 = default)"`
}

type getResultOutput struct {
	Status        string                 `json:"status"`
	Investigation *harness.Investigation `json:"investigation,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleStartInvestigation(ctx context.Context, _ *sdkmcp.CallToolRequest, input startInvestigationInput) (*sdkmcp.CallToolResult, startInvestigationOutput, error) {
	logger := logging.New("mcp-session")
	// Check and swap under one lock so concurrent starts cannot both
	// pass the active-session check and orphan a running session.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		select {
		case <-s.session.Done():
			logger.Info("replacing finished session", "old_id", s.session.ID)
			s.session.Cancel()
		default:
			if input.Force {
				logger.Warn("force-replacing active session", "old_id", s.session.ID)
				s.session.Cancel()
			} else {
				return nil, startInvestigationOutput{}, fmt.Errorf("an investigation is already running (id=%s)", s.session.ID)
			}
		}
		s.session = nil
	}

	sess, err := NewSession(s.base, input.Ticket)
	if err != nil {
		return nil, startInvestigationOutput{}, fmt.Errorf("start investigation: %w", err)
	}
	s.session = sess

	return nil, startInvestigationOutput{
		SessionID: sess.ID,
		Provider:  s.base.Adapter.Provider(),
		Status:    string(StateRunning),
	}, nil
}

func (s *Server) handleGetSteps(_ context.Context, _ *sdkmcp.CallToolRequest, input getStepsInput) (*sdkmcp.CallToolResult, getStepsOutput, error) {
	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, getStepsOutput{}, err
	}
	return nil, getStepsOutput{
		Steps:  sess.Log.Since(input.Since),
		Total:  sess.Log.Len(),
		Status: string(sess.State()),
	}, nil
}

func (s *Server) handleGetResult(ctx context.Context, _ *sdkmcp.CallToolRequest, input getResultInput) (*sdkmcp.CallToolResult, getResultOutput, error) {
	sess, err := s.getSession(input.SessionID)
	if err != nil {
		return nil, getResultOutput{}, err
	}

	timeout := DefaultResultTimeout
	if input.TimeoutMS > 0 {
		timeout = time.Duration(input.TimeoutMS) * time.Millisecond
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	inv, runErr := sess.WaitResult(wctx)
	if inv == nil && runErr != nil {
		// Timeout or cancellation while waiting, not a run failure.
		return nil, getResultOutput{}, fmt.Errorf("get_result: %w", runErr)
	}

	out := getResultOutput{Status: string(sess.State()), Investigation: inv}
	if runErr != nil {
		out.Error = runErr.Error()
	}
	return nil, out, nil
}

func (s *Server) getSession(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, fmt.Errorf("no active session (start one with start_investigation)")
	}
	if s.session.ID != id {
		return nil, fmt.Errorf("unknown session %q (active: %s)", id, s.session.ID)
	}
	return s.session, nil
}
