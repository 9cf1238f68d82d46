package effects

// ProgressReporter receives completion progress as a percentage.
// ProcessImage calls Report exactly once, with 100, after the effect has been
// applied and before the result is written.
type ProgressReporter interface {
	Report(percent int) error
}

// ProgressFunc adapts an ordinary function to a ProgressReporter.
type ProgressFunc func(percent int) error

func (f ProgressFunc) Report(percent int) error {
	return f(percent)
}
