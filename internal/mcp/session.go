package mcp

import (
	"context"
	"errors"
	"sync"

	"haci/internal/harness"

	"github.com/google/uuid"
)

// SessionState tracks the lifecycle of an investigation session.
type SessionState string

const (
	StateRunning SessionState = "running"
	StateDone    SessionState = "done"
	StateError   SessionState = "error"
)

// StepLog is a thread-safe, append-only record of investigation steps.
// Clients poll it with a since index and never see steps reordered.
type StepLog struct {
	mu    sync.Mutex
	steps []harness.Step
}

func (l *StepLog) append(step harness.Step) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, step)
}

// Since returns a copy of all steps from idx onward. Negative indexes
// clamp to 0.
func (l *StepLog) Since(idx int) []harness.Step {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.steps) {
		return nil
	}
	out := make([]harness.Step, len(l.steps)-idx)
	copy(out, l.steps[idx:])
	return out
}

// Len returns the number of recorded steps.
func (l *StepLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steps)
}

// Session is one investigation driven over MCP. The run happens in a
// background goroutine; tool calls poll the log and block on Done.
type Session struct {
	ID     string
	Ticket string
	Log    *StepLog

	mu     sync.Mutex
	state  SessionState
	inv    *harness.Investigation
	err    error
	doneCh chan struct{}
	cancel context.CancelFunc
}

// NewSession starts an investigation for ticket using base as the
// runner template. The base Observer, if any, still fires; the session
// log is fed alongside it.
func NewSession(base harness.Config, ticket string) (*Session, error) {
	s := &Session{
		ID:     uuid.NewString(),
		Ticket: ticket,
		Log:    &StepLog{},
		state:  StateRunning,
		doneCh: make(chan struct{}),
	}

	cfg := base
	logObs := harness.StepObserverFunc(func(_ *harness.Investigation, step harness.Step) {
		s.Log.append(step)
	})
	if base.Observer != nil {
		cfg.Observer = harness.MultiObserver{logObs, base.Observer}
	} else {
		cfg.Observer = logObs
	}

	runner, err := harness.New(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx, runner)
	return s, nil
}

func (s *Session) run(ctx context.Context, runner *harness.Runner) {
	inv, err := runner.Run(ctx, s.Ticket)
	s.mu.Lock()
	s.inv = inv
	s.err = err
	if err != nil {
		s.state = StateError
	} else {
		s.state = StateDone
	}
	s.mu.Unlock()
	close(s.doneCh)
}

// Done is closed when the investigation finishes or is cancelled.
func (s *Session) Done() <-chan struct{} { return s.doneCh }

// Cancel aborts the run. The session still transitions through Done.
func (s *Session) Cancel() { s.cancel() }

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the finished investigation. It errors while the run
// is still in flight.
func (s *Session) Result() (*harness.Investigation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return nil, errors.New("mcp: investigation still running")
	}
	return s.inv, s.err
}

// WaitResult blocks until the run finishes or ctx expires.
func (s *Session) WaitResult(ctx context.Context) (*harness.Investigation, error) {
	select {
	case <-s.doneCh:
		return s.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
