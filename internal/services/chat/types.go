package chat

// Logger defines the logging interface used across chat services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Turn is one reconstructed conversation turn supplied to the language model
// as memory.
type Turn struct {
	Role    string // "human" or "assistant"
	Content string
}

// Source is one retrieved chunk cited with an answer. Content is truncated
// to a preview.
type Source struct {
	Content  string
	Metadata map[string]string
}

// Result is the outcome of one query turn.
type Result struct {
	Answer  string
	Sources []Source
}
