package base

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var LogCompression = NewLogCategory("Compression")

type CompressedReader interface {
	io.ReadCloser
}
type CompressedWriter interface {
	io.WriteCloser
}

type CompressionOptions struct {
	Format CompressionFormat
	Level  CompressionLevel
}

type CompressionOptionFunc func(*CompressionOptions)

func CompressionOptionFormat(fmt CompressionFormat) CompressionOptionFunc {
	return func(co *CompressionOptions) {
		co.Format = fmt
	}
}
func CompressionOptionLevel(lvl CompressionLevel) CompressionOptionFunc {
	return func(co *CompressionOptions) {
		co.Level = lvl
	}
}

func NewCompressionOptions(options ...CompressionOptionFunc) (result CompressionOptions) {
	result.Format = COMPRESSION_FORMAT_NONE
	result.Level = COMPRESSION_LEVEL_BALANCED

	for _, opt := range options {
		opt(&result)
	}
	return
}

func NewCompressedReader(reader io.Reader, options ...CompressionOptionFunc) (CompressedReader, error) {
	co := NewCompressionOptions(options...)
	switch co.Format {
	case COMPRESSION_FORMAT_NONE:
		return io.NopCloser(reader), nil
	case COMPRESSION_FORMAT_LZ4:
		return NewLz4Reader(reader), nil
	case COMPRESSION_FORMAT_ZSTD:
		return NewZStdReader(reader)
	default:
		return nil, MakeUnexpectedValueError(co.Format, co.Format)
	}
}

func NewCompressedWriter(writer io.Writer, options ...CompressionOptionFunc) (CompressedWriter, error) {
	co := NewCompressionOptions(options...)
	switch co.Format {
	case COMPRESSION_FORMAT_NONE:
		return nopWriteCloser{writer}, nil
	case COMPRESSION_FORMAT_LZ4:
		return NewLz4Writer(writer, co.Level)
	case COMPRESSION_FORMAT_ZSTD:
		return NewZStdWriter(writer, co.Level)
	default:
		return nil, MakeUnexpectedValueError(co.Format, co.Format)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

/***************************************
 * LZ4 Compression Pool
 ***************************************/

func NewLz4Reader(reader io.Reader) CompressedReader {
	result := transientLz4Reader{TransientLz4Reader.Allocate()}
	result.Reset(reader)
	return result
}
func NewLz4Writer(writer io.Writer, lvl CompressionLevel) (CompressedWriter, error) {
	result := transientLz4Writer{TransientLz4Writer.Allocate()}
	result.Reset(writer)

	var err error
	switch lvl {
	case COMPRESSION_LEVEL_FAST:
		err = result.Apply(lz4.CompressionLevelOption(lz4.Fast))
	case COMPRESSION_LEVEL_BALANCED:
		err = result.Apply(lz4.CompressionLevelOption(lz4.Level3))
	case COMPRESSION_LEVEL_BEST:
		err = result.Apply(lz4.CompressionLevelOption(lz4.Level7))
	}
	if err != nil {
		TransientLz4Writer.Release(result.Writer)
		return nil, err
	}
	return result, nil
}

type transientLz4Reader struct {
	*lz4.Reader
}

func (x transientLz4Reader) Close() error {
	TransientLz4Reader.Release(x.Reader)
	return nil
}

var TransientLz4Reader = NewRecycler(
	func() *lz4.Reader {
		return lz4.NewReader(nil)
	},
	func(r *lz4.Reader) {
		r.Reset(nil)
	})

type transientLz4Writer struct {
	*lz4.Writer
}

func (x transientLz4Writer) Close() (err error) {
	defer TransientLz4Writer.Release(x.Writer)
	return x.Writer.Close()
}

// lz4 writers must be reset before options can be applied again
var TransientLz4Writer = NewRecycler(
	func() *lz4.Writer {
		return lz4.NewWriter(nil)
	},
	func(w *lz4.Writer) {
		w.Reset(nil)
	})

/***************************************
 * ZSTD Compression
 ***************************************/

func getZStdEncoderLevel(lvl CompressionLevel) zstd.EncoderLevel {
	switch lvl {
	case COMPRESSION_LEVEL_FAST:
		return zstd.SpeedFastest
	case COMPRESSION_LEVEL_BEST:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

type zstdReader struct {
	*zstd.Decoder
}

func (x zstdReader) Close() error {
	x.Decoder.Close()
	return nil
}

func NewZStdReader(reader io.Reader) (CompressedReader, error) {
	dec, err := zstd.NewReader(reader, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return zstdReader{dec}, nil
}
func NewZStdWriter(writer io.Writer, lvl CompressionLevel) (CompressedWriter, error) {
	return zstd.NewWriter(writer,
		zstd.WithEncoderLevel(getZStdEncoderLevel(lvl)),
		zstd.WithEncoderConcurrency(1))
}

/***************************************
 * CompressionLevel
 ***************************************/

type CompressionLevel int32

const (
	COMPRESSION_LEVEL_FAST CompressionLevel = iota
	COMPRESSION_LEVEL_BALANCED
	COMPRESSION_LEVEL_BEST
)

func CompressionLevels() []CompressionLevel {
	return []CompressionLevel{
		COMPRESSION_LEVEL_FAST,
		COMPRESSION_LEVEL_BALANCED,
		COMPRESSION_LEVEL_BEST,
	}
}
func (x CompressionLevel) String() string {
	switch x {
	case COMPRESSION_LEVEL_FAST:
		return "FAST"
	case COMPRESSION_LEVEL_BALANCED:
		return "BALANCED"
	case COMPRESSION_LEVEL_BEST:
		return "BEST"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x *CompressionLevel) Set(in string) error {
	for _, it := range CompressionLevels() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return MakeUnexpectedValueError(x, in)
}

/***************************************
 * CompressionFormat
 ***************************************/

type CompressionFormat int32

const (
	COMPRESSION_FORMAT_NONE CompressionFormat = iota
	COMPRESSION_FORMAT_LZ4
	COMPRESSION_FORMAT_ZSTD
)

func CompressionFormats() []CompressionFormat {
	return []CompressionFormat{
		COMPRESSION_FORMAT_NONE,
		COMPRESSION_FORMAT_LZ4,
		COMPRESSION_FORMAT_ZSTD,
	}
}
func (x CompressionFormat) String() string {
	switch x {
	case COMPRESSION_FORMAT_NONE:
		return "NONE"
	case COMPRESSION_FORMAT_LZ4:
		return "LZ4"
	case COMPRESSION_FORMAT_ZSTD:
		return "ZSTD"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x CompressionFormat) Extension() string {
	switch x {
	case COMPRESSION_FORMAT_NONE:
		return ""
	case COMPRESSION_FORMAT_LZ4:
		return ".lz4"
	case COMPRESSION_FORMAT_ZSTD:
		return ".zst"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x *CompressionFormat) Set(in string) error {
	for _, it := range CompressionFormats() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return MakeUnexpectedValueError(x, in)
}

// CompressionFormatFromPath strips a known compression suffix from the path, if any.
func CompressionFormatFromPath(path string) (CompressionFormat, string) {
	ext := filepath.Ext(path)
	for _, it := range CompressionFormats() {
		if it != COMPRESSION_FORMAT_NONE && strings.EqualFold(ext, it.Extension()) {
			return it, strings.TrimSuffix(path, ext)
		}
	}
	return COMPRESSION_FORMAT_NONE, path
}
