// Copyright 2020-2021, DataCube, Inc.

package workflow

import (
	"regexp"
	"strconv"
)

// Placeholders are ${N} or bare $N, N a positive integer. $N is greedy, so a
// placeholder is never followed by another digit: "$12" is argument 12, not
// argument 1 then "2".
var placeholderRe = regexp.MustCompile(`\$\{([0-9]+)\}|\$([0-9]+)`)

// Substitute replaces positional placeholders in a workflow's textual form
// with the 1-indexed args. A placeholder with no corresponding argument is
// deleted, not left in the output.
func Substitute(text string, args []string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := placeholderRe.FindStringSubmatch(m)
		digits := sub[1]
		if digits == "" {
			digits = sub[2]
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > len(args) {
			return ""
		}
		return args[n-1]
	})
}
