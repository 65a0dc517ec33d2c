package harness

// StepObserver receives each step the moment it is recorded. The
// investigation pointer is live: observers must not mutate it and must
// not retain it past the callback.
type StepObserver interface {
	OnStep(inv *Investigation, step Step)
}

// StepObserverFunc adapts a function to StepObserver.
type StepObserverFunc func(inv *Investigation, step Step)

// OnStep implements StepObserver.
func (f StepObserverFunc) OnStep(inv *Investigation, step Step) { f(inv, step) }

// MultiObserver fans one step out to several observers in order.
type MultiObserver []StepObserver

// OnStep implements StepObserver.
func (m MultiObserver) OnStep(inv *Investigation, step Step) {
	for _, o := range m {
		if o != nil {
			o.OnStep(inv, step)
		}
	}
}
