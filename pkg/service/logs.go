package service

type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
)

type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
	Level     LogLevel `json:"level"`
}

// LogSink keeps the most recent log lines around so they can be inspected
// over HTTP.
type LogSink interface {
	Info(message string)
	Error(message string)
	Recent(n int) []LogEntry
}

type Logs struct {
	Logs []LogEntry `json:"logs"`
}
