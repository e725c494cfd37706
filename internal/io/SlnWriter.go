package io

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/danjacques/gofslock/fslock"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/sln"
	"github.com/poppolopoppo/slngen/utils"
)

/***************************************
 * SlnWriteResult
 ***************************************/

type SlnWriteResult int32

const (
	SLN_WRITE_CREATED SlnWriteResult = iota
	SLN_WRITE_UPDATED
	SLN_WRITE_UNCHANGED
)

func (x SlnWriteResult) String() string {
	switch x {
	case SLN_WRITE_CREATED:
		return "CREATED"
	case SLN_WRITE_UPDATED:
		return "UPDATED"
	case SLN_WRITE_UNCHANGED:
		return "UNCHANGED"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}

/***************************************
 * SlnWriterOptions
 ***************************************/

type SlnWriterOptions struct {
	// BOM prefixes the file with an UTF-8 byte order mark, as Visual Studio does
	BOM bool
	// Atomic writes to a temporary file first, then renames it over the solution
	Atomic bool
	// Force rewrites the solution even when its content did not change
	Force bool
}

type SlnWriterOptionFunc = func(*SlnWriterOptions)

func OptionSlnWriterBOM(enabled bool) SlnWriterOptionFunc {
	return func(o *SlnWriterOptions) { o.BOM = enabled }
}
func OptionSlnWriterAtomic(enabled bool) SlnWriterOptionFunc {
	return func(o *SlnWriterOptions) { o.Atomic = enabled }
}
func OptionSlnWriterForce(enabled bool) SlnWriterOptionFunc {
	return func(o *SlnWriterOptions) { o.Force = enabled }
}

func NewSlnWriterOptions(options ...SlnWriterOptionFunc) (result SlnWriterOptions) {
	for _, opt := range options {
		opt(&result)
	}
	return
}

/***************************************
 * Solution file writer
 ***************************************/

var ErrSolutionLocked = errors.New("solution is locked by another process")

// RenderSolution serializes the solution in memory, with an optional BOM.
func RenderSolution(solution *sln.Solution, bom bool) ([]byte, error) {
	var buf bytes.Buffer

	var dst io.Writer = &buf
	var encoder io.WriteCloser
	if bom {
		encoder = transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())
		dst = encoder
	}

	if _, err := solution.WriteTo(dst); err != nil {
		return nil, err
	}
	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// WriteSolution renders the solution, then writes it to its output file while holding an inter-process lock.
func WriteSolution(solution *sln.Solution, options ...SlnWriterOptionFunc) (utils.Filename, SlnWriteResult, error) {
	wo := NewSlnWriterOptions(options...)
	output := utils.UFS.File(solution.Options.OutputFile())

	content, err := RenderSolution(solution, wo.BOM)
	if err != nil {
		return output, SLN_WRITE_UNCHANGED, err
	}

	if err = utils.UFS.MkdirEx(output.Dirname); err != nil {
		return output, SLN_WRITE_UNCHANGED, err
	}

	lockPath := output.String() + ".lock"
	base.LogTrace(LogIO, "locking solution file %q", lockPath)
	lock, err := fslock.Lock(lockPath)
	if err != nil {
		if err == fslock.ErrLockHeld {
			return output, SLN_WRITE_UNCHANGED, fmt.Errorf("%w: %q (%w)", ErrSolutionLocked, output, err)
		}
		return output, SLN_WRITE_UNCHANGED, err
	}
	defer func() {
		base.LogTrace(LogIO, "unlocking solution file %q", lockPath)
		if er := lock.Unlock(); er != nil {
			base.LogWarning(LogIO, "failed to unlock %q: %v", lockPath, er)
		}
	}()

	result := SLN_WRITE_CREATED
	if output.Exists() {
		result = SLN_WRITE_UPDATED

		if !wo.Force {
			var previous, next base.Fingerprint
			if previous, err = DigestFile(output); err != nil {
				return output, SLN_WRITE_UNCHANGED, err
			}
			if next, err = DigestBytes(content); err != nil {
				return output, SLN_WRITE_UNCHANGED, err
			}
			if previous == next {
				base.LogVerbose(LogIO, "solution %q is up-to-date", output)
				return output, SLN_WRITE_UNCHANGED, nil
			}
		}
	}

	var written int64
	write := func(w io.Writer) error {
		_, err := NewCountingWriter(w, &written).Write(content)
		return err
	}

	if wo.Atomic {
		err = utils.UFS.SafeCreate(output, write)
	} else {
		err = utils.UFS.CreateBuffered(output, write)
	}
	if err != nil {
		return output, SLN_WRITE_UNCHANGED, fmt.Errorf("failed to write solution %q: %w", output, err)
	}

	base.LogVerbose(LogIO, "%v solution %q (%d bytes)", result, output, written)
	return output, result, nil
}
