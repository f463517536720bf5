// Copyright 2020-2021, DataCube, Inc.

package query_test

import (
	"testing"

	"github.com/datacube-org/cubeclient/proto"
	"github.com/datacube-org/cubeclient/query"
	"github.com/datacube-org/cubeclient/session"
)

func TestBuildCommandSingleToken(t *testing.T) {
	s := &session.Session{
		SessionID:     "S1",
		Cwd:           "/d",
		HostPartition: "main",
		ExecMode:      "sync",
		NCores:        2,
	}
	got := query.BuildCommand("oph_reduce", s)
	want := "oph_reduce sessionid=S1;cwd=/d;host_partition=main;exec_mode=sync;ncores=2;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildCommandOperatorForm(t *testing.T) {
	s := &session.Session{
		SessionID: "S1",
		Cwd:       "/d",
		ExecMode:  "sync",
		NCores:    2,
	}
	// The explicit operator= form has no whitespace but still takes ";" as
	// its separator, with or without the trailing terminator.
	for _, cmd := range []string{
		"operator=oph_reduce;operation=avg",
		"operator=oph_reduce;operation=avg;",
	} {
		got := query.BuildCommand(cmd, s)
		want := "operator=oph_reduce;operation=avg;sessionid=S1;cwd=/d;exec_mode=sync;ncores=2;"
		if got != want {
			t.Errorf("BuildCommand(%q) = %q, want %q", cmd, got, want)
		}
	}
}

func TestBuildCommandNeverOverrides(t *testing.T) {
	s := &session.Session{Cwd: "/session/dir", NCores: 1}
	got := query.BuildCommand("oph_list cwd=/explicit;", s)
	want := "oph_list cwd=/explicit;ncores=1;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildCommandFixesTerminator(t *testing.T) {
	s := &session.Session{NCores: 1}
	got := query.BuildCommand("oph_delete cube=xyz", s)
	want := "oph_delete cube=xyz;ncores=1;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildWorkflowRequest(t *testing.T) {
	s := &session.Session{
		SessionID: "S1",
		Cwd:       "/d",
		Cdd:       "/data",
		Cube:      "http://host/1/1",
		ExecMode:  "sync",
		NCores:    2,
	}
	doc := &proto.Workflow{
		Name:     "w",
		Author:   "a",
		Abstract: "b",
		ExecMode: "async", // explicit, must survive
		NCores:   "8",
	}
	query.BuildWorkflowRequest(doc, s)

	if doc.ExecMode != "async" {
		t.Errorf("exec_mode overridden to %s", doc.ExecMode)
	}
	if doc.NCores != "8" {
		t.Errorf("ncores overridden to %s", doc.NCores)
	}
	if doc.SessionID != "S1" || doc.Cwd != "/d" || doc.Cdd != "/data" || doc.Cube != "http://host/1/1" {
		t.Errorf("session defaults not applied: %+v", doc)
	}
	if doc.HostPartition != "" {
		t.Errorf("host_partition set to %s, session had none", doc.HostPartition)
	}
}
