package base

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func testCompressionRoundTrip(t *testing.T, format CompressionFormat, level CompressionLevel) {
	input := []byte(strings.Repeat(`{"FullPath":"C:\\src\\App\\App.csproj","Configuration":"Debug"}`, 200))

	var compressed bytes.Buffer
	wr, err := NewCompressedWriter(&compressed, CompressionOptionFormat(format), CompressionOptionLevel(level))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wr.Write(input); err != nil {
		t.Fatal(err)
	}
	if err := wr.Close(); err != nil {
		t.Fatal(err)
	}

	if format != COMPRESSION_FORMAT_NONE && compressed.Len() >= len(input) {
		t.Errorf("%v/%v: compressed size %d is not smaller than %d", format, level, compressed.Len(), len(input))
	}

	rd, err := NewCompressedReader(&compressed, CompressionOptionFormat(format))
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	output, err := io.ReadAll(rd)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(input, output) {
		t.Errorf("%v/%v: decompressed output differs from input", format, level)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	for _, format := range CompressionFormats() {
		for _, level := range CompressionLevels() {
			testCompressionRoundTrip(t, format, level)
		}
	}
}

func TestCompressionWriterRecycling(t *testing.T) {
	for i := 0; i < 3; i++ {
		testCompressionRoundTrip(t, COMPRESSION_FORMAT_LZ4, COMPRESSION_LEVEL_FAST)
	}
}

func TestCompressionFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		format CompressionFormat
		trail  string
	}{
		{"manifest.json", COMPRESSION_FORMAT_NONE, "manifest.json"},
		{"manifest.json.lz4", COMPRESSION_FORMAT_LZ4, "manifest.json"},
		{"out/manifest.yaml.ZST", COMPRESSION_FORMAT_ZSTD, "out/manifest.yaml"},
		{"archive.zip", COMPRESSION_FORMAT_NONE, "archive.zip"},
	}
	for _, test := range tests {
		format, trail := CompressionFormatFromPath(test.path)
		if format != test.format || trail != test.trail {
			t.Errorf("CompressionFormatFromPath(%q) = (%v, %q), want (%v, %q)",
				test.path, format, trail, test.format, test.trail)
		}
	}
}

func TestCompressionFormatSet(t *testing.T) {
	var format CompressionFormat
	if err := format.Set("zstd"); err != nil || format != COMPRESSION_FORMAT_ZSTD {
		t.Errorf("Set(zstd) = %v, %v", format, err)
	}
	if err := format.Set("gzip"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
