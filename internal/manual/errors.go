package manual

import "fmt"

// BadDocumentation marks malformed command documentation: a parameter
// with no type, builder calls referencing unknown names, and similar
// programming errors. These surface at registration or Finalize and are
// fatal; the bot must not start with broken help text.
type BadDocumentation struct {
	Command string
	Detail  string
}

func (e *BadDocumentation) Error() string {
	if e.Command == "" {
		return "bad documentation: " + e.Detail
	}
	return fmt.Sprintf("bad documentation for %q: %s", e.Command, e.Detail)
}

func badDoc(command, format string, args ...any) error {
	return &BadDocumentation{Command: command, Detail: fmt.Sprintf(format, args...)}
}

// NoSuchCommandError is returned by Manual.Lookup when a query matches
// nothing. Suggestion carries the closest known name when its similarity
// clears the configured floor, otherwise it is empty. Callers render
// this to the end user; it is not a bug.
type NoSuchCommandError struct {
	Query      string
	Suggestion string
}

func (e *NoSuchCommandError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("no such command: %q", e.Query)
	}
	return fmt.Sprintf("no such command: %q (did you mean %q?)", e.Query, e.Suggestion)
}
