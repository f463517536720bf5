// Copyright 2020, DataCube, Inc.

package proto

const (
	STATE_UNKNOWN byte = iota

	// Normal states, in order
	STATE_PENDING  // acknowledged by the engine, not started
	STATE_RUNNING  // executing server-side
	STATE_COMPLETE // completed successfully

	// Error states, no order
	STATE_FAIL      // engine reported failure
	STATE_CANCELLED // stopped by an explicit cancel request
)

var StateName = map[byte]string{
	STATE_UNKNOWN:   "UNKNOWN",
	STATE_PENDING:   "PENDING",
	STATE_RUNNING:   "RUNNING",
	STATE_COMPLETE:  "COMPLETE",
	STATE_FAIL:      "FAIL",
	STATE_CANCELLED: "CANCELLED",
}

var StateValue = map[string]byte{
	"UNKNOWN":   STATE_UNKNOWN,
	"PENDING":   STATE_PENDING,
	"RUNNING":   STATE_RUNNING,
	"COMPLETE":  STATE_COMPLETE,
	"FAIL":      STATE_FAIL,
	"CANCELLED": STATE_CANCELLED,
}

const (
	EXEC_MODE_SYNC  = "sync"
	EXEC_MODE_ASYNC = "async"
)

const (
	DEP_TYPE_ALL      = "all"
	DEP_TYPE_SINGLE   = "single"
	DEP_TYPE_EMBEDDED = "embedded"
)

const (
	ON_ERROR_SKIP     = "skip"
	ON_ERROR_CONTINUE = "continue"
	ON_ERROR_BREAK    = "break"
	ON_ERROR_REPEAT   = "repeat" // "repeat N", N >= 0
)

// TASK_TYPE_DEFAULT is the task type tag applied when a task declares none.
const TASK_TYPE_DEFAULT = "ophidia"

const (
	OBJCLASS_TEXT    = "text"
	OBJCLASS_GRID    = "grid"
	OBJCLASS_DIGRAPH = "digraph"
)

// OBJKEY_EXTRA marks the key/value side channel the engine may attach to a
// response. Its values take precedence over equivalent text objects.
const OBJKEY_EXTRA = "extra"

// Text object titles with session-context meaning.
const (
	TITLE_OUTPUT_CUBE = "Output Cube"
	TITLE_CWD         = "Current Working Directory"
	TITLE_CDD         = "Current Data Directory"
)

// Extra side-channel keys with session-context meaning.
const (
	EXTRA_KEY_CUBE           = "cube"
	EXTRA_KEY_CWD            = "cwd"
	EXTRA_KEY_CDD            = "cdd"
	EXTRA_KEY_EXECUTION_TIME = "execution_time"
	EXTRA_KEY_ACCESS_TOKEN   = "access_token"
)
