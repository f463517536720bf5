// Copyright 2020-2021, DataCube, Inc.

// Package proto provides wire message structures and constants for the
// engine API: the workflow document submitted to the engine and the JSON
// response envelope it returns.
package proto

import (
	"fmt"
	"strings"
)

// Workflow is the wire form of a workflow (experiment) document: a named DAG
// of tasks submitted to the engine as one unit. Workflows are identified by
// Name, which is mandatory.
type Workflow struct {
	Name          string  `json:"name"`
	Author        string  `json:"author"`
	Abstract      string  `json:"abstract"`
	OnError       string  `json:"on_error,omitempty"`  // skip|continue|break|"repeat N"
	ExecMode      string  `json:"exec_mode,omitempty"` // EXEC_MODE_* const
	NCores        string  `json:"ncores,omitempty"`    // non-negative integer literal
	SessionID     string  `json:"sessionid,omitempty"`
	Cwd           string  `json:"cwd,omitempty"`
	Cdd           string  `json:"cdd,omitempty"`
	Cube          string  `json:"cube,omitempty"`
	HostPartition string  `json:"host_partition,omitempty"`
	Tasks         []*Task `json:"tasks"`
}

// Task represents one operator invocation node within a workflow. Tasks are
// identified by Name, which must be unique within a workflow.
type Task struct {
	Name         string        `json:"name"`
	Operator     string        `json:"operator"`
	Arguments    []string      `json:"arguments,omitempty"` // key=value strings
	Dependencies []*Dependency `json:"dependencies,omitempty"`
	OnError      string        `json:"on_error,omitempty"`
	Type         string        `json:"type,omitempty"` // TASK_TYPE_DEFAULT unless set

	// Indexes of tasks that depend on this task. Attached during validation,
	// never sent on the wire.
	DependentsIndexes []int `json:"-"`
}

// Dependency is a typed edge from the task holding it to the task named by
// Task. Argument optionally binds the producing task's output to one of the
// consuming task's arguments.
type Dependency struct {
	Task     string `json:"task"`
	Type     string `json:"type,omitempty"` // DEP_TYPE_* const
	Argument string `json:"argument,omitempty"`

	// Index of the target task in Workflow.Tasks. Resolved during validation,
	// never sent on the wire.
	TaskIndex int `json:"-"`
}

// Response is the engine's JSON response envelope: an ordered list of typed
// response objects.
type Response struct {
	Objects []ResponseObject `json:"response"`
}

// ResponseObject is one object in a response. Class determines which
// ResponseContent fields are meaningful (OBJCLASS_* const).
type ResponseObject struct {
	Key     string            `json:"objkey"`
	Class   string            `json:"objclass"`
	Content []ResponseContent `json:"objcontent"`
}

// ResponseContent carries the payload of a response object. Text objects use
// Title and Message. Grid objects use Title, RowKeys and RowValues. The
// "extra" side channel uses the parallel Keys and Values lists.
type ResponseContent struct {
	Title     string     `json:"title,omitempty"`
	Message   string     `json:"message,omitempty"`
	RowKeys   []string   `json:"rowkeys,omitempty"`
	RowValues [][]string `json:"rowvalues,omitempty"`
	Keys      []string   `json:"keys,omitempty"`
	Values    []string   `json:"values,omitempty"`
}

// JobOrdinal extracts the numeric job ordinal from an engine job id of the
// form <sessionid>?<ordinal>#<suffix>: the substring between the first "?"
// and the next "#". The trailing "#<suffix>" marker is optional.
func JobOrdinal(jobID string) (string, error) {
	i := strings.Index(jobID, "?")
	if i < 0 {
		return "", fmt.Errorf("invalid job id %s: no ? separator", jobID)
	}
	ordinal := jobID[i+1:]
	if j := strings.Index(ordinal, "#"); j >= 0 {
		ordinal = ordinal[:j]
	}
	if ordinal == "" {
		return "", fmt.Errorf("invalid job id %s: empty ordinal", jobID)
	}
	return ordinal, nil
}
