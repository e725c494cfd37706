package base

import (
	"slices"
	"testing"
)

func TestMakeStringer(t *testing.T) {
	s := MakeStringer(func() string { return "lambda" })
	if s.String() != "lambda" {
		t.Errorf("MakeStringer failed: got %q", s.String())
	}
	if MakeString(s) != "lambda" || MakeString(42) != "42" {
		t.Error("MakeString failed")
	}
}

type testStringer struct{ v string }

func (t testStringer) String() string { return t.v }

func TestJoinString(t *testing.T) {
	joined := JoinString("-", testStringer{"a"}, testStringer{"b"}, testStringer{"c"})
	if joined != "a-b-c" {
		t.Errorf("JoinString failed: got %q", joined)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in     string
		expect []string
	}{
		{"", nil},
		{"Debug", []string{"Debug"}},
		{"Debug;Release", []string{"Debug", "Release"}},
		{" Debug ;; Release;", []string{"Debug", "Release"}},
		{";;", nil},
	}
	for _, tt := range tests {
		if got := SplitList(tt.in, ";"); !slices.Equal(got, tt.expect) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.expect)
		}
	}
}

func TestStringSet(t *testing.T) {
	set := NewStringSet("x86", "AnyCPU", "x86")
	if !set.Equals(StringSet{"x86", "AnyCPU"}) {
		t.Errorf("unexpected set %v", set)
	}
	set.AppendUniq("anycpu")
	if set.Len() != 3 {
		t.Errorf("set should be case-sensitive: %v", set)
	}
	if err := set.Set("Win32;x64;Win32"); err != nil {
		t.Fatal(err)
	}
	if set.String() != "Win32;x64" {
		t.Errorf("unexpected set %v", set)
	}
}
