package command

// Func is a Command wrapping a function. The function receives the
// completion routine and decides when to call it: inside run for
// synchronous work, or later from another goroutine for asynchronous work.
type Func struct {
	Core
	name string
	run  func(complete func())
}

// NewFunc returns a command named name that executes run. A nil run
// completes immediately.
func NewFunc(name string, run func(complete func())) *Func {
	f := &Func{name: name, run: run}
	f.Bind(f)
	return f
}

// Name returns the command's diagnostic name.
func (f *Func) Name() string {
	return f.name
}

// Execute starts the wrapped function.
func (f *Func) Execute() error {
	if err := f.Begin(); err != nil {
		return err
	}
	if f.run == nil {
		f.Complete()
		return nil
	}
	f.run(f.Complete)
	return nil
}

var _ Command = (*Func)(nil)
