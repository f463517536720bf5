// Copyright 2020-2021, DataCube, Inc.

package workflow

import (
	"encoding/json"
	"regexp"

	"github.com/datacube-org/cubeclient/errors"
	"github.com/datacube-org/cubeclient/proto"
)

var (
	argKeyRe  = regexp.MustCompile(`^[A-Za-z0-9_]+=`)
	repeatRe  = regexp.MustCompile("^" + proto.ON_ERROR_REPEAT + ` [0-9]+$`)
	integerRe = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateText validates a workflow in its textual form: comments are
// stripped, the document deserialized and then checked like Validate. Used
// on raw documents and again after placeholder substitution.
func ValidateText(text string) error {
	data := []byte(StripComments(text))
	if !json.Valid(data) {
		return errors.ValidationError{Message: "Workflow is not a valid JSON"}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.ValidationError{Message: "Workflow is not a valid dictionary"}
	}
	var doc proto.Workflow
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.ValidationError{Message: "Workflow is not a valid dictionary"}
	}
	return Validate(&doc)
}

// Validate decides whether a workflow document is submittable. Checks run in
// a fixed order and the first failure wins: mandatory global fields, global
// option grammar, per-task fields and argument syntax, dependency referential
// integrity (self-references and unknown targets), and finally cycle freedom.
// A nil return means the workflow is valid.
//
// Validation resolves each dependency's TaskIndex and each task's
// DependentsIndexes as a side effect; those are rebuilt on every call, so
// validating twice without mutation gives the same result.
func Validate(doc *proto.Workflow) error {
	// Mandatory global fields.
	if doc.Name == "" {
		return errors.ValidationError{Message: "Mandatory global argument 'name' is missing"}
	}
	if doc.Author == "" {
		return errors.ValidationError{Message: "Mandatory global argument 'author' is missing"}
	}
	if doc.Abstract == "" {
		return errors.ValidationError{Message: "Mandatory global argument 'abstract' is missing"}
	}

	// Optional global fields, when present, must parse.
	if doc.OnError != "" && !validOnError(doc.OnError) {
		return errors.ValidationError{Message: "Global argument 'on_error' is not correct"}
	}
	if doc.NCores != "" && !integerRe.MatchString(doc.NCores) {
		return errors.ValidationError{Message: "Global argument 'ncores' is not correct"}
	}
	if doc.ExecMode != "" && doc.ExecMode != proto.EXEC_MODE_SYNC && doc.ExecMode != proto.EXEC_MODE_ASYNC {
		return errors.ValidationError{Message: "Global argument 'exec_mode' is not correct"}
	}

	if len(doc.Tasks) == 0 {
		return errors.ValidationError{Message: "Workflow task section is missing"}
	}

	// Per-task field checks, in declared order.
	for _, t := range doc.Tasks {
		if t.Name == "" {
			return errors.ValidationError{Message: "Task 'name' is missing"}
		}
		if t.Operator == "" {
			return errors.ValidationError{Message: "Task 'operator' is missing in task: " + t.Name}
		}
		for _, arg := range t.Arguments {
			if !argKeyRe.MatchString(arg) {
				return errors.ValidationError{Message: "Task argument '" + arg + "' is not valid in task: " + t.Name}
			}
		}
		for _, dep := range t.Dependencies {
			if dep.Task == "" {
				return errors.ValidationError{Message: "Dependency 'task' is missing in task: " + t.Name}
			}
			switch dep.Type {
			case "", proto.DEP_TYPE_ALL, proto.DEP_TYPE_SINGLE, proto.DEP_TYPE_EMBEDDED:
			default:
				return errors.ValidationError{Message: "Dependency 'type' is not correct in task: " + t.Name}
			}
		}
		if t.OnError != "" && !validOnError(t.OnError) {
			return errors.ValidationError{Message: "Task 'on_error' is not correct in task: " + t.Name}
		}
	}

	// Cross-reference pass: resolve each dependency to a task index and
	// record the reverse edge. Rebuilt from scratch each call.
	for _, t := range doc.Tasks {
		t.DependentsIndexes = nil
	}
	for i, t := range doc.Tasks {
		for _, dep := range t.Dependencies {
			if dep.Task == t.Name {
				return errors.ValidationError{Message: "Task dependency points to same task: " + t.Name}
			}
			found := false
			for j, target := range doc.Tasks {
				if target.Name == dep.Task {
					dep.TaskIndex = j
					target.DependentsIndexes = append(target.DependentsIndexes, i)
					found = true
					break
				}
			}
			if !found {
				return errors.ValidationError{Message: "Task dependency points to not existing task: " + dep.Task}
			}
		}
	}

	if !isDAG(doc.Tasks) {
		return errors.ValidationError{Message: "Workflow is not a DAG"}
	}
	return nil
}

func validOnError(v string) bool {
	switch v {
	case proto.ON_ERROR_SKIP, proto.ON_ERROR_CONTINUE, proto.ON_ERROR_BREAK:
		return true
	}
	return repeatRe.MatchString(v)
}
