// Copyright 2020, DataCube, Inc.

package workflow_test

import (
	"testing"

	"github.com/datacube-org/cubeclient/workflow"
)

func TestSubstitute(t *testing.T) {
	cases := []struct {
		text string
		args []string
		want string
	}{
		{"src_path=${1}", []string{"/data/x.nc"}, "src_path=/data/x.nc"},
		{"a=$1;b=${1};", []string{"x"}, "a=x;b=x;"}, // both forms, same argument
		{"a=$1;b=$2;", []string{"x"}, "a=x;b=;"},    // unresolved placeholder deleted
		{"v=$12", []string{"a", "b"}, "v="},         // $12 is argument 12, not $1 then "2"
		{"cost=$x", []string{"a"}, "cost=$x"},       // bare $ without digits untouched
		{"p=${2} q=$1", []string{"one", "two"}, "p=two q=one"},
	}
	for _, c := range cases {
		if got := workflow.Substitute(c.text, c.args); got != c.want {
			t.Errorf("Substitute(%q, %v) = %q, want %q", c.text, c.args, got, c.want)
		}
	}
}
