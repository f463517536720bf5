// Copyright 2020-2021, DataCube, Inc.

package workflow_test

import (
	"testing"

	"github.com/go-test/deep"

	cerr "github.com/datacube-org/cubeclient/errors"
	"github.com/datacube-org/cubeclient/proto"
	"github.com/datacube-org/cubeclient/workflow"
)

func TestAddTaskAutoName(t *testing.T) {
	w := workflow.New("exp", "me", "test run", nil)
	if err := w.AddTask(workflow.NewTask("", "oph_importnc", []string{"src_path=/x.nc"})); err != nil {
		t.Fatal(err)
	}
	if err := w.AddTask(workflow.NewTask("", "oph_reduce", nil)); err != nil {
		t.Fatal(err)
	}
	if w.Doc.Tasks[0].Name != "exp_1" || w.Doc.Tasks[1].Name != "exp_2" {
		t.Errorf("auto names %s, %s; want exp_1, exp_2", w.Doc.Tasks[0].Name, w.Doc.Tasks[1].Name)
	}
	if w.Doc.Tasks[0].Type != proto.TASK_TYPE_DEFAULT {
		t.Errorf("task type %s, want %s", w.Doc.Tasks[0].Type, proto.TASK_TYPE_DEFAULT)
	}
}

func TestAddTaskDuplicateName(t *testing.T) {
	w := workflow.New("exp", "me", "test run", nil)
	if err := w.AddTask(workflow.NewTask("t1", "op", nil)); err != nil {
		t.Fatal(err)
	}
	err := w.AddTask(workflow.NewTask("t1", "op", nil))
	if _, ok := err.(cerr.DuplicateTaskNameError); !ok {
		t.Errorf("got %v, want DuplicateTaskNameError", err)
	}
}

func TestAddTaskUnresolvedDependency(t *testing.T) {
	w := workflow.New("exp", "me", "test run", nil)
	err := w.AddTask(workflow.NewTask("t1", "op", nil, &proto.Dependency{Task: "missing"}))
	if _, ok := err.(cerr.UnresolvedDependencyError); !ok {
		t.Errorf("got %v, want UnresolvedDependencyError", err)
	}

	// A task cannot depend on itself either: it is not among the already
	// declared tasks when it is added.
	err = w.AddTask(workflow.NewTask("t2", "op", nil, &proto.Dependency{Task: "t2"}))
	if _, ok := err.(cerr.UnresolvedDependencyError); !ok {
		t.Errorf("got %v, want UnresolvedDependencyError for self-reference", err)
	}
}

func TestGetTask(t *testing.T) {
	w := workflow.New("exp", "me", "test run", nil)
	if err := w.AddTask(workflow.NewTask("t1", "op", nil)); err != nil {
		t.Fatal(err)
	}
	if w.Task("t1") == nil {
		t.Error("t1 not found")
	}
	if w.Task("nope") != nil {
		t.Error("found task that was never added")
	}
}

func TestRoundTrip(t *testing.T) {
	w := workflow.New("exp", "me", "round trip", &workflow.Options{
		OnError:  "skip",
		ExecMode: proto.EXEC_MODE_ASYNC,
		NCores:   4,
	})
	if err := w.AddTask(workflow.NewTask("t1", "oph_importnc", []string{"src_path=/x.nc", "measure=t"})); err != nil {
		t.Fatal(err)
	}
	if err := w.AddTask(workflow.NewTask("t2", "oph_reduce", []string{"operation=avg"},
		&proto.Dependency{Task: "t1", Type: proto.DEP_TYPE_SINGLE, Argument: "cube"})); err != nil {
		t.Fatal(err)
	}

	data, err := w.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	back, err := workflow.Parse(data, t.Logf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(w.Doc, back.Doc); diff != nil {
		t.Error(diff)
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	_, err := workflow.Parse([]byte(`{"author":"a","abstract":"b","tasks":[]}`), nil)
	if err == nil {
		t.Error("parsed document without a name")
	}
}

func TestParseUnknownFieldFallback(t *testing.T) {
	var warned bool
	logFunc := func(string, ...interface{}) { warned = true }
	w, err := workflow.Parse([]byte(`{"name":"w","author":"a","abstract":"b","bogus":1,"tasks":[]}`), logFunc)
	if err != nil {
		t.Fatal(err)
	}
	if !warned {
		t.Error("unknown field accepted without a warning")
	}
	if w.Doc.Name != "w" {
		t.Errorf("name %s, want w", w.Doc.Name)
	}
}
