package slug_test

import (
	"testing"

	"revisit/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Dynamic Programming": "dynamic-programming",
		"  Hash   Table ":     "hash-table",
		"***":                 "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestFromProblemURL(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"https://leetcode.com/problems/two-sum/":                                   "two-sum",
		"https://leetcode.com/problems/two-sum/description/?envType=study-plan-v2": "two-sum",
		"https://leetcode.com/problems/valid-anagram?envType=daily":                "valid-anagram",
		"merge-intervals": "merge-intervals",
		"":                "",
	}
	for in, want := range cases {
		if got := slug.FromProblemURL(in); got != want {
			t.Fatalf("FromProblemURL(%q): expected %q, got %q", in, want, got)
		}
	}
}
