package main

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandGlobs expands ** and shell-glob patterns in args into a sorted
// file list, passing through any argument that contains no glob
// metacharacters unchanged (so a plain missing file still surfaces its
// own "file not found" error downstream, matching the teacher's
// util.ExpandGlobs fallback behavior).
func expandGlobs(args []string) []string {
	var out []string
	for _, a := range args {
		if !strings.ContainsAny(a, "*?[") {
			out = append(out, a)
			continue
		}
		matches, err := doublestar.FilepathGlob(a)
		if err != nil || len(matches) == 0 {
			out = append(out, a)
			continue
		}
		out = append(out, matches...)
	}
	return out
}
