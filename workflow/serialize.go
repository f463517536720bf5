// Copyright 2020-2021, DataCube, Inc.

package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"regexp"

	"github.com/datacube-org/cubeclient/proto"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)//.*$`)
)

// StripComments removes /* ... */ and // ... comment spans from a workflow
// document's textual form. Documents are validated after stripping, both
// before and after placeholder substitution.
func StripComments(text string) string {
	text = blockCommentRe.ReplaceAllString(text, "")
	return lineCommentRe.ReplaceAllString(text, "")
}

// Parse deserializes a workflow document from its comment-tolerant textual
// form. Unknown fields are rejected first; if that fails, the document is
// re-read leniently and the warning logged via logFunc (Printf-like, may be
// nil). A document without a name is rejected either way.
func Parse(data []byte, logFunc func(string, ...interface{})) (*Workflow, error) {
	data = []byte(StripComments(string(data)))

	var doc proto.Workflow
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		if logFunc != nil {
			logFunc("Warning: %s\n", err)
		}
		doc = proto.Workflow{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("workflow document has no name")
	}
	return &Workflow{Doc: &doc, counter: len(doc.Tasks)}, nil
}

// Load reads a workflow document from a JSON file.
func Load(path string, logFunc func(string, ...interface{})) (*Workflow, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := Parse(data, logFunc)
	if err != nil {
		return nil, fmt.Errorf("error reading workflow file %s: %s", path, err)
	}
	return w, nil
}

// Marshal serializes the workflow document to its wire form. The mapping is
// purely structural: field for field, task order preserved.
func (w *Workflow) Marshal() ([]byte, error) {
	return json.Marshal(w.Doc)
}
