package pipeline

// Reporter receives per-package progress from a [Runner].
// The CLI implements it to print console lines; tests use it to record events.
type Reporter interface {
	// Saved is called after a diagram has been written to path.
	Saved(pkg, path string)

	// Failed is called when a package could not be rendered or published.
	Failed(f Failure)

	// Done is called once at the end of every run that loaded its input,
	// whether or not some packages failed.
	Done(result *Result)
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) Saved(string, string) {}
func (NopReporter) Failed(Failure)       {}
func (NopReporter) Done(*Result)         {}

// Ensure NopReporter implements Reporter.
var _ Reporter = NopReporter{}
