package base

import (
	"errors"
	"strings"
	"testing"
)

func TestStructuredFileIndent(t *testing.T) {
	var sb strings.Builder
	sf := NewStructuredFile(&sb, STRUCTUREDFILE_DEFAULT_TAB, STRUCTUREDFILE_NONE)

	sf.Println("Global")
	sf.BeginIndent()
	sf.Println("GlobalSection(%s) = %s", "SolutionConfigurationPlatforms", "preSolution")
	sf.BeginIndent()
	sf.Println("Debug|x64 = Debug|x64")
	sf.EndIndent()
	sf.Println("EndGlobalSection")
	sf.EndIndent()
	sf.Println("EndGlobal")

	expected := "Global\n" +
		"\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\n" +
		"\t\tDebug|x64 = Debug|x64\n" +
		"\tEndGlobalSection\n" +
		"EndGlobal\n"
	if sb.String() != expected {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", sb.String(), expected)
	}
	if sf.Site().Line != 6 {
		t.Errorf("expected to be on line 6, got %d", sf.Site().Line)
	}
}

func TestStructuredFileCRLF(t *testing.T) {
	var sb strings.Builder
	sf := NewStructuredFile(&sb, STRUCTUREDFILE_DEFAULT_TAB, STRUCTUREDFILE_CRLF)

	sf.Print("Project")
	sf.Print("(%q)", "x")
	sf.LineBreak()
	sf.Println("EndProject")

	if sb.String() != "Project(\"x\")\r\nEndProject\r\n" {
		t.Errorf("unexpected output %q", sb.String())
	}
}

type failingWriter struct{ calls int }

func (x *failingWriter) Write(p []byte) (int, error) {
	x.calls++
	return 0, errors.New("disk full")
}

func TestStructuredFileKeepsFirstError(t *testing.T) {
	wr := &failingWriter{}
	sf := NewStructuredFile(wr, STRUCTUREDFILE_DEFAULT_TAB, STRUCTUREDFILE_NONE)
	sf.Println("a")
	sf.Println("b")

	if sf.Err() == nil || sf.Err().Error() != "disk full" {
		t.Errorf("expected the write error to be kept, got %v", sf.Err())
	}
	if wr.calls != 1 {
		t.Errorf("expected writes to stop after the first failure, got %d calls", wr.calls)
	}
}
