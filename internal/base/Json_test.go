package base

import (
	"bytes"
	"strings"
	"testing"
)

type testJsonRecord struct {
	FullPath       string
	Configurations string `json:",omitempty"`
}

func TestJsonSerializeDeserialize(t *testing.T) {
	in := []testJsonRecord{
		{FullPath: `C:\src\App\App.csproj`, Configurations: "Debug;Release"},
		{FullPath: `C:\src\Lib\Lib.csproj`},
	}

	var buf bytes.Buffer
	if err := JsonSerialize(in, &buf, OptionJsonPrettyPrint(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("expected indented output, got %q", buf.String())
	}

	var out []testJsonRecord
	if err := JsonDeserialize(&out, &buf); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: %v != %v", out, in)
	}
}

func TestJsonDeserializeRejectsUnknownFields(t *testing.T) {
	var out testJsonRecord
	if err := JsonDeserialize(&out, strings.NewReader(`{"FullPath":"a","Bogus":1}`)); err == nil {
		t.Error("expected an error for unknown field")
	}
}

func TestJsonDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := JsonSerialize(map[string]string{"k": "<a&b>"}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<a&b>") {
		t.Errorf("html was escaped: %q", buf.String())
	}
}
