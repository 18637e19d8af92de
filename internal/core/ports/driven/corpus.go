package driven

import "context"

// CorpusSource reads the raw transcript document.
type CorpusSource interface {
	// Read returns the full transcript text. The text must be valid UTF-8.
	Read(ctx context.Context) (string, error)

	// Name identifies the source, usually a file path.
	Name() string
}

// CorpusWatcher notifies when the transcript changes.
type CorpusWatcher interface {
	// Watch calls onChange after each change until ctx is cancelled.
	// It blocks and returns ctx.Err() or a watcher failure.
	Watch(ctx context.Context, onChange func()) error
}
