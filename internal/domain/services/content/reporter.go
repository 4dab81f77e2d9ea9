package content

// Reporter receives user-facing diagnostics emitted while a command runs.
// It is separate from the structured log.
type Reporter interface {
	Error(msg string)
	Warn(msg string)
	Success(msg string)
	Info(msg string)
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Error(string)   {}
func (NopReporter) Warn(string)    {}
func (NopReporter) Success(string) {}
func (NopReporter) Info(string)    {}
