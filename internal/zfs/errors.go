package zfs

import (
	"errors"
	"fmt"
)

// Error kinds returned by the query pipeline. Match them with errors.Is.
var (
	ErrNotFound        = errors.New("zfs: entity does not exist")
	ErrToolFailure     = errors.New("zfs: tool exited non-zero")
	ErrToolUnavailable = errors.New("zfs: tool could not be started")
	ErrMalformedOutput = errors.New("zfs: malformed tool output")
	ErrInvalidRequest  = errors.New("zfs: invalid request")
)

// NotFoundError reports a named dataset or pool whose list call failed.
type NotFoundError struct {
	Family Family
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ZFS %s %s does not exist!", e.Family.Noun(), e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ToolError carries the captured stderr and exit status of a failed get call.
type ToolError struct {
	Family   Family
	Target   string
	Stderr   string
	ExitCode int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("Error while trying to get facts about ZFS %s: %s", e.Family.Noun(), e.Target)
}

func (e *ToolError) Is(target error) bool { return target == ErrToolFailure }

// MalformedOutputError is returned when a stdout line is not exactly
// entity<TAB>property<TAB>value.
type MalformedOutputError struct {
	LineNo int
	Line   string
	Fields int
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed output on line %d: expected 3 tab-separated fields, got %d: %q",
		e.LineNo, e.Fields, e.Line)
}

func (e *MalformedOutputError) Is(target error) bool { return target == ErrMalformedOutput }

// InvalidRequestError rejects a request before any process is spawned.
type InvalidRequestError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidRequestError) Is(target error) bool { return target == ErrInvalidRequest }
