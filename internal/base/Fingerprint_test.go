package base

import (
	"strings"
	"testing"
)

func TestStringFingerprintIsStable(t *testing.T) {
	a := StringFingerprint("project:src/App/App.csproj")
	b := StringFingerprint("project:src/App/App.csproj")
	if a != b {
		t.Errorf("fingerprints differ: %v != %v", a, b)
	}
	if c := StringFingerprint("folder:src/App/App.csproj"); c == a {
		t.Errorf("distinct inputs share a fingerprint: %v", c)
	}
	if !a.Valid() {
		t.Error("fingerprint should be valid")
	}
}

func TestFingerprintUuid(t *testing.T) {
	fp := StringFingerprint("Docs")
	id := fp.Uuid()
	if id.Version() != 8 {
		t.Errorf("expected version 8, got %v", id.Version())
	}
	if id.Variant().String() != "RFC4122" {
		t.Errorf("expected RFC4122 variant, got %v", id.Variant())
	}
	if fp.Uuid() != id {
		t.Error("uuid derivation is not deterministic")
	}
}

func TestFingerprintTextRoundTrip(t *testing.T) {
	fp := StringFingerprint("round trip")
	txt, err := fp.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var other Fingerprint
	if err := other.UnmarshalText(txt); err != nil {
		t.Fatal(err)
	}
	if other != fp {
		t.Errorf("%v != %v", other, fp)
	}
	if err := other.Set("abcd"); err == nil {
		t.Error("short fingerprint should not parse")
	}
}

func TestReaderFingerprintMatchesBytes(t *testing.T) {
	content := "Microsoft Visual Studio Solution File, Format Version 12.00\n"
	fromReader, err := ReaderFingerprint(strings.NewReader(content), Fingerprint{})
	if err != nil {
		t.Fatal(err)
	}
	if fromReader == BytesFingerprint([]byte(content)) {
		t.Error("seeded reader fingerprint should differ from unseeded digest")
	}
	again, _ := ReaderFingerprint(strings.NewReader(content), Fingerprint{})
	if again != fromReader {
		t.Error("reader fingerprint is not stable")
	}
}
