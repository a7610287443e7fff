// Package logging provides the engine's diagnostic output: a lazily
// evaluated, asynchronous message sink so that hot-path logging calls never
// pay for string formatting when nothing is listening.
package logging

// Sink is anything that can receive diagnostic messages. Write is handed a
// thunk rather than a string so callers on the firing hot path never format
// a message the sink ends up discarding or deferring.
type Sink interface {
	Open() error
	Write(msg func() string)
	Close() error
}

// Nop discards everything without ever calling the message thunk.
type Nop struct{}

func (Nop) Open() error             { return nil }
func (Nop) Write(msg func() string) {}
func (Nop) Close() error            { return nil }
