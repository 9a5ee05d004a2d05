package jsonpatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBetween(t *testing.T) {
	type bracket struct {
		Ceiling float64 `json:"ceiling"`
		Rate    float64 `json:"rate"`
	}
	type table struct {
		Year     int       `json:"year"`
		Brackets []bracket `json:"brackets"`
		Note     string    `json:"note,omitempty"`
	}

	a := table{Year: 2023, Brackets: []bracket{{1320, 0.075}, {2571.29, 0.09}, {3856.94, 0.12}}, Note: "old"}
	b := table{Year: 2024, Brackets: []bracket{{1412, 0.075}, {2666.68, 0.09}}}

	got, err := Between(a, b)
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	want := []Operation{
		{Op: "remove", Path: "/note"},
		{Op: "replace", Path: "/brackets/0/ceiling", Value: 1412.0},
		{Op: "replace", Path: "/brackets/1/ceiling", Value: 2666.68},
		{Op: "remove", Path: "/brackets/2"},
		{Op: "replace", Path: "/year", Value: 2024.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patch mismatch (-want +got):\n%s", diff)
	}
}

func TestDiff_Identical(t *testing.T) {
	doc := map[string]any{"a": []any{1.0, "x"}, "b": nil}
	if ops := Diff(doc, doc, ""); len(ops) != 0 {
		t.Fatalf("expected no operations, got %v", ops)
	}
}

func TestDiff_TypeChangeAndEscaping(t *testing.T) {
	a := map[string]any{"a/b": 1.0, "c~d": map[string]any{"x": 1.0}}
	b := map[string]any{"a/b": "one", "c~d": []any{1.0}, "new": true}

	want := []Operation{
		{Op: "replace", Path: "/a~1b", Value: "one"},
		{Op: "replace", Path: "/c~0d", Value: []any{1.0}},
		{Op: "add", Path: "/new", Value: true},
	}
	if diff := cmp.Diff(want, Diff(a, b, "")); diff != "" {
		t.Errorf("patch mismatch (-want +got):\n%s", diff)
	}
}
