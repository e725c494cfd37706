package io

import (
	"bytes"
	"io"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/utils"
)

var LogIO = base.NewLogCategory("IO")

/***************************************
 * Observable Writer
 ***************************************/

type ObservableWriterFunc = func(w io.Writer, buf []byte) (int, error)

type ObservableWriter struct {
	io.Writer
	OnWrite ObservableWriterFunc
}

func NewObservableWriter(w io.Writer, onWrite ObservableWriterFunc) ObservableWriter {
	base.Assert(func() bool { return w != nil })
	base.Assert(func() bool { return onWrite != nil })
	return ObservableWriter{
		Writer:  w,
		OnWrite: onWrite,
	}
}

func (x ObservableWriter) Close() error {
	if cls, ok := x.Writer.(io.WriteCloser); ok {
		return cls.Close()
	}
	return nil
}
func (x ObservableWriter) Write(buf []byte) (int, error) {
	if x.OnWrite != nil {
		return x.OnWrite(x.Writer, buf)
	}
	return x.Writer.Write(buf)
}

// NewCountingWriter adds every byte written through the returned writer to *written.
func NewCountingWriter(w io.Writer, written *int64) ObservableWriter {
	return NewObservableWriter(w, func(w io.Writer, buf []byte) (n int, err error) {
		n, err = w.Write(buf)
		*written += int64(n)
		return
	})
}

/***************************************
 * File Digest
 ***************************************/

var digestSeed = base.StringFingerprint("slngen-digest")

func DigestBytes(content []byte) (base.Fingerprint, error) {
	return base.ReaderFingerprint(bytes.NewReader(content), digestSeed)
}

// DigestFile fingerprints a file content, a missing file yields an invalid fingerprint without error.
func DigestFile(source utils.Filename) (digest base.Fingerprint, err error) {
	if !source.Exists() {
		return
	}
	err = utils.UFS.OpenBuffered(source, func(r io.Reader) (err error) {
		digest, err = base.ReaderFingerprint(r, digestSeed)
		return
	})
	if err == nil {
		base.LogTrace(LogIO, "digest %q -> %v", source, digest.ShortString())
	}
	return
}
