// Copyright 2020-2021, DataCube, Inc.

// Package errors provides errors reported to the user. All errors must
// implement the error interface and return a helpful error message. The
// message can be terse because it will be reported in context: a
// ValidationError makes sense in response to submitting the workflow that
// failed the check.
package errors

import (
	"fmt"
)

var _ error = ConfigError{}

// ConfigError means the session was constructed with incomplete identity or
// connection parameters. No partial session state is retained.
type ConfigError struct {
	Field string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("incomplete configuration: %s is not set", e.Field)
}

// --------------------------------------------------------------------------

var _ error = ValidationError{}

// ValidationError means a workflow failed a local validation check. The
// transport is never contacted. Message is the reason from the first failing
// rule; rules run in a fixed order and the first failure wins.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// --------------------------------------------------------------------------

var _ error = TransportError{}

// TransportError means the request never produced an engine result:
// connection failure, protocol failure, or a malformed response. The caller
// may retry; session context fields are left unchanged.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Err)
}

// --------------------------------------------------------------------------

var _ error = EngineError{}

// EngineError means the engine executed the request but reported failure,
// either a nonzero return code or an error embedded in a code-0 response.
// Message is the engine's message verbatim.
type EngineError struct {
	Code    int
	Message string
}

func (e EngineError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("engine error: return code %d", e.Code)
	}
	return fmt.Sprintf("engine error: %s", e.Message)
}

// --------------------------------------------------------------------------

var _ error = AlreadySubmittedError{}

// AlreadySubmittedError means a workflow that already carries a remote job id
// was submitted again. A workflow document instance is submittable once.
type AlreadySubmittedError struct {
	Workflow string
	JobID    string
}

func (e AlreadySubmittedError) Error() string {
	return fmt.Sprintf("workflow %s already submitted as job %s", e.Workflow, e.JobID)
}

// --------------------------------------------------------------------------

var _ error = MissingJobIdError{}

// MissingJobIdError means a status or cancel call had no job id to work
// with: none was supplied and none is stored from a previous submission.
type MissingJobIdError struct{}

func (e MissingJobIdError) Error() string {
	return "no job id: none supplied and no previous submission"
}

// --------------------------------------------------------------------------

var _ error = DuplicateTaskNameError{}

type DuplicateTaskNameError struct {
	Task string
}

func (e DuplicateTaskNameError) Error() string {
	return fmt.Sprintf("task name %s already used in workflow", e.Task)
}

// --------------------------------------------------------------------------

var _ error = UnresolvedDependencyError{}

type UnresolvedDependencyError struct {
	Task   string
	Target string
}

func (e UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("task %s depends on %s, which is not in the workflow", e.Task, e.Target)
}
