// Copyright 2020-2021, DataCube, Inc.

// Package query builds engine requests from caller commands and session
// context. Defaults are appended only for keys the caller did not set:
// explicit values always win, the builder never overwrites.
package query

import (
	"strconv"
	"strings"

	"github.com/datacube-org/cubeclient/proto"
	"github.com/datacube-org/cubeclient/session"
)

// param is one recognized session-context parameter: its wire key and how to
// read its current value from the session. An empty value means "not set,
// append nothing". Order matters: params are appended in list order.
type param struct {
	key string
	val func(*session.Session) string
}

var params = []param{
	{"sessionid", func(s *session.Session) string { return s.SessionID }},
	{"cwd", func(s *session.Session) string { return s.Cwd }},
	{"cdd", func(s *session.Session) string { return s.Cdd }},
	{"cube", func(s *session.Session) string { return s.Cube }},
	{"host_partition", func(s *session.Session) string { return s.HostPartition }},
	{"exec_mode", func(s *session.Session) string { return s.ExecMode }},
	{"ncores", func(s *session.Session) string {
		if s.NCores <= 0 {
			return ""
		}
		return strconv.Itoa(s.NCores)
	}},
}

// BuildCommand augments a flat command with session-context defaults. Both
// accepted command forms are normalized first: a command carrying key=value
// pairs ("operator=x;key=val" or "opname key=val") is terminated with ";", a
// bare operator name gets a separating space. Then each recognized parameter
// is appended as key=value; unless its key already appears in the command or
// its session value is unset.
func BuildCommand(cmd string, s *session.Session) string {
	cmd = strings.TrimSpace(cmd)
	if len(strings.Fields(cmd)) > 1 || strings.Contains(cmd, "=") {
		if !strings.HasSuffix(cmd, ";") {
			cmd += ";"
		}
	} else {
		cmd += " "
	}
	for _, p := range params {
		v := p.val(s)
		if v == "" || strings.Contains(cmd, p.key+"=") {
			continue
		}
		cmd += p.key + "=" + v + ";"
	}
	return cmd
}

// BuildWorkflowRequest applies the same defaulting to the named fields of a
// workflow document: each field is set from the session only if the document
// leaves it empty and the session value is present. The document is modified
// in place.
func BuildWorkflowRequest(doc *proto.Workflow, s *session.Session) {
	if doc.SessionID == "" {
		doc.SessionID = s.SessionID
	}
	if doc.Cwd == "" {
		doc.Cwd = s.Cwd
	}
	if doc.Cdd == "" {
		doc.Cdd = s.Cdd
	}
	if doc.Cube == "" {
		doc.Cube = s.Cube
	}
	if doc.HostPartition == "" {
		doc.HostPartition = s.HostPartition
	}
	if doc.ExecMode == "" {
		doc.ExecMode = s.ExecMode
	}
	if doc.NCores == "" && s.NCores > 0 {
		doc.NCores = strconv.Itoa(s.NCores)
	}
}
