// Copyright 2020-2021, DataCube, Inc.

// Package workflow provides the client-side workflow document model: building
// a named DAG of operator tasks, validating it, and preparing it for
// submission to the engine.
package workflow

import (
	"fmt"

	"github.com/datacube-org/cubeclient/errors"
	"github.com/datacube-org/cubeclient/proto"
)

// Options are the recognized optional workflow attributes. Anything else a
// document carries is rejected at parse time (see Parse).
type Options struct {
	OnError       string
	ExecMode      string
	NCores        int
	SessionID     string
	Cwd           string
	Cdd           string
	Cube          string
	HostPartition string
}

// Workflow wraps a workflow document under construction. A Workflow becomes
// submitted when it receives a remote job id; a submitted Workflow cannot be
// submitted again.
type Workflow struct {
	Doc *proto.Workflow

	// JobID is the engine-assigned id from submission. Empty until submitted.
	JobID string

	counter int // auto-name counter for unnamed tasks
}

// New creates a workflow with the three mandatory global attributes and any
// recognized options.
func New(name, author, abstract string, opts *Options) *Workflow {
	doc := &proto.Workflow{
		Name:     name,
		Author:   author,
		Abstract: abstract,
	}
	if opts != nil {
		doc.OnError = opts.OnError
		doc.ExecMode = opts.ExecMode
		if opts.NCores > 0 {
			doc.NCores = fmt.Sprintf("%d", opts.NCores)
		}
		doc.SessionID = opts.SessionID
		doc.Cwd = opts.Cwd
		doc.Cdd = opts.Cdd
		doc.Cube = opts.Cube
		doc.HostPartition = opts.HostPartition
	}
	return &Workflow{Doc: doc}
}

// NewTask creates a task for AddTask. Arguments are ordered key=value
// strings. The default task type tag is applied if none is set.
func NewTask(name, operator string, args []string, deps ...*proto.Dependency) *proto.Task {
	return &proto.Task{
		Name:         name,
		Operator:     operator,
		Arguments:    args,
		Dependencies: deps,
		Type:         proto.TASK_TYPE_DEFAULT,
	}
}

// AddTask appends a task to the workflow. An unnamed task is auto-named
// <workflowName>_<counter>. Fails if the name collides with an existing task
// or a declared dependency targets a task not yet in the workflow (which also
// forbids self-references at add time).
func (w *Workflow) AddTask(t *proto.Task) error {
	if t.Name == "" {
		w.counter++
		t.Name = fmt.Sprintf("%s_%d", w.Doc.Name, w.counter)
	}
	if w.Task(t.Name) != nil {
		return errors.DuplicateTaskNameError{Task: t.Name}
	}
	for _, dep := range t.Dependencies {
		if w.Task(dep.Task) == nil {
			return errors.UnresolvedDependencyError{Task: t.Name, Target: dep.Task}
		}
	}
	if t.Type == "" {
		t.Type = proto.TASK_TYPE_DEFAULT
	}
	w.Doc.Tasks = append(w.Doc.Tasks, t)
	return nil
}

// Task returns the first task with the given name, or nil.
func (w *Workflow) Task(name string) *proto.Task {
	for _, t := range w.Doc.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Submitted reports whether this workflow instance already went to the engine.
func (w *Workflow) Submitted() bool {
	return w.JobID != ""
}
