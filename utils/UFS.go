package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"

	"github.com/poppolopoppo/slngen/internal/base"
)

var LogUFS = base.NewLogCategory("UFS")

/***************************************
 * Path to string
 ***************************************/

const OSPathSeparator = os.PathSeparator

func CleanPath(in string) string {
	if len(in) == 0 {
		return in
	}

	in = filepath.Clean(in)

	if cleaned, err := filepath.Abs(in); err == nil {
		in = cleaned
	} else {
		base.LogPanicErr(LogUFS, err)
	}

	return in
}

func JoinPath(in string, args ...string) string {
	base.Assert(func() bool { return len(in) > 0 })
	sb := strings.Builder{}
	capacity := len(in)
	for _, it := range args {
		capacity += len(it) + 1
	}
	sb.Grow(capacity)
	sb.WriteString(in)
	for _, it := range args {
		if len(it) == 0 {
			continue
		}
		sb.WriteRune(OSPathSeparator)
		sb.WriteString(it)
	}
	return sb.String()
}

func lastIndexOfPathSeparator(in string) (int, bool) {
	n := (len(in) - 1)
	for i := range in {
		i = n - i
		if os.IsPathSeparator(in[i]) {
			return i, true
		}
	}
	return len(in), false
}

/***************************************
 * Directory
 ***************************************/

type Directory struct {
	Path string
}

func MakeDirectory(str string) Directory {
	return Directory{Path: CleanPath(str)}
}
func (d Directory) Valid() bool { return len(d.Path) > 0 }
func (d Directory) Basename() string {
	if i, ok := lastIndexOfPathSeparator(d.Path); ok {
		return d.Path[i+1:]
	}
	return d.Path
}
func (d Directory) Folder(name ...string) Directory {
	return Directory{Path: JoinPath(d.Path, name...)}
}
func (d Directory) File(name ...string) Filename {
	return Filename{
		Dirname:  d.Folder(name[:len(name)-1]...),
		Basename: name[len(name)-1]}
}
func (d Directory) Relative(to Directory) string {
	if path, err := filepath.Rel(to.Path, d.Path); err == nil {
		return path
	}
	return d.Path
}
func (d Directory) Exists() bool {
	st, err := os.Stat(d.Path)
	return err == nil && st.IsDir()
}
func (d Directory) Equals(o Directory) bool {
	return d == o
}
func (d Directory) Compare(o Directory) int {
	return strings.Compare(d.Path, o.Path)
}
func (d Directory) String() string {
	return d.Path
}

/***************************************
 * Filename
 ***************************************/

type Filename struct {
	Dirname  Directory
	Basename string
}

func MakeFilename(str string) Filename {
	str = CleanPath(str)
	dirname, basename := filepath.Split(str)
	if len(dirname) > 1 {
		// trim ending path separator
		dirname = dirname[:len(dirname)-1]
	}
	return Filename{
		Basename: basename,
		Dirname:  Directory{Path: dirname},
	}
}

func (f Filename) Valid() bool { return len(f.Basename) > 0 }
func (f Filename) Ext() string {
	return filepath.Ext(f.Basename)
}
func (f Filename) TrimExt() string {
	return strings.TrimSuffix(f.Basename, f.Ext())
}
func (f Filename) ReplaceExt(ext string) Filename {
	return Filename{
		Basename: f.TrimExt() + ext,
		Dirname:  f.Dirname,
	}
}
func (f Filename) Relative(to Directory) string {
	if path, err := filepath.Rel(to.Path, f.Dirname.Path); err == nil {
		return filepath.Join(path, f.Basename)
	}
	return f.String()
}
func (f Filename) Exists() bool {
	st, err := os.Stat(f.String())
	return err == nil && !st.IsDir()
}
func (f Filename) Equals(o Filename) bool {
	return (f.Basename == o.Basename && f.Dirname.Equals(o.Dirname))
}
func (f Filename) Compare(o Filename) int {
	if c := f.Dirname.Compare(o.Dirname); c != 0 {
		return c
	}
	return strings.Compare(f.Basename, o.Basename)
}
func (f Filename) String() string {
	if len(f.Dirname.Path) > 0 {
		return filepath.Join(f.Dirname.Path, f.Basename)
	}
	return f.Basename
}

/***************************************
 * flag.Value interface
 ***************************************/

func (d *Directory) Set(str string) error {
	if str != "" {
		*d = MakeDirectory(str)
	} else {
		*d = Directory{}
	}
	return nil
}
func (d Directory) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
func (d *Directory) UnmarshalText(data []byte) error {
	return d.Set(string(data))
}

func (f *Filename) Set(str string) error {
	if str != "" {
		*f = MakeFilename(str)
	} else {
		*f = Filename{}
	}
	return nil
}
func (f Filename) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
func (f *Filename) UnmarshalText(data []byte) error {
	return f.Set(string(data))
}

/***************************************
 * File times
 ***************************************/

func GetModificationTime(stat os.FileInfo) time.Time {
	return times.Get(stat).ModTime()
}

/***************************************
 * Frontend
 ***************************************/

var UFS UFSFrontEnd = makeUFSFrontEnd()

type UFSFrontEnd struct {
	Working Directory
}

func makeUFSFrontEnd() (result UFSFrontEnd) {
	if wd, err := os.Getwd(); err == nil {
		result.Working = MakeDirectory(wd)
	} else {
		base.LogPanicErr(LogUFS, err)
	}
	return
}

func (ufs *UFSFrontEnd) File(str string) Filename {
	if !filepath.IsAbs(str) && ufs.Working.Valid() {
		str = filepath.Join(ufs.Working.Path, str)
	}
	return MakeFilename(str)
}
func (ufs *UFSFrontEnd) Stat(src Filename) (os.FileInfo, error) {
	return os.Stat(src.String())
}
func (ufs *UFSFrontEnd) MTime(src Filename) (time.Time, error) {
	st, err := ufs.Stat(src)
	if err != nil {
		return time.Time{}, err
	}
	return GetModificationTime(st), nil
}
func (ufs *UFSFrontEnd) Remove(dst Filename) error {
	if err := os.Remove(dst.String()); err != nil {
		base.LogError(LogUFS, "%v", err)
		return err
	}
	return nil
}
func (ufs *UFSFrontEnd) MkdirEx(dst Directory) error {
	path := dst.String()
	if st, err := os.Stat(path); st != nil && (err == nil || os.IsExist(err)) {
		if !st.IsDir() {
			return fmt.Errorf("ufs: %q already exist, but is not a directory", dst)
		}
	} else {
		base.LogDebug(LogUFS, "mkdir %v", dst)
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("ufs: mkdir %q got error %w", dst, err)
		}
	}
	return nil
}
func (ufs *UFSFrontEnd) CreateFile(dst Filename, write func(*os.File) error) (err error) {
	if err = ufs.MkdirEx(dst.Dirname); err != nil {
		return err
	}

	base.LogDebug(LogUFS, "create '%v'", dst)
	var outp *os.File
	if outp, err = os.Create(dst.String()); err == nil {
		defer func() {
			closeErr := outp.Close()
			if err == nil {
				err = closeErr
			}
		}()
		if err = write(outp); err == nil {
			return nil
		}
	}

	base.LogWarning(LogUFS, "CreateFile: caught %v while trying to create %v", err, dst)
	return err
}
func (ufs *UFSFrontEnd) Create(dst Filename, write func(io.Writer) error) error {
	return ufs.CreateFile(dst, func(f *os.File) error {
		return write(f)
	})
}
func (ufs *UFSFrontEnd) CreateBuffered(dst Filename, write func(io.Writer) error) error {
	return ufs.Create(dst, func(w io.Writer) error {
		buffered := bufio.NewWriter(w)
		if err := write(buffered); err != nil {
			return err
		}
		return buffered.Flush()
	})
}

// SafeCreate writes to a sibling temporary file, then renames it over dst.
func (ufs *UFSFrontEnd) SafeCreate(dst Filename, write func(io.Writer) error) error {
	tmpFilename := dst.ReplaceExt(dst.Ext() + ".tmp")
	defer os.Remove(tmpFilename.String())

	err := ufs.CreateBuffered(tmpFilename, write)
	if err == nil {
		if err = os.Rename(tmpFilename.String(), dst.String()); err != nil {
			base.LogWarning(LogUFS, "SafeCreate: %v", err)
		}
	}
	return err
}

func (ufs *UFSFrontEnd) OpenFile(src Filename, read func(*os.File) error) (err error) {
	base.LogDebug(LogUFS, "open '%v'", src)

	var input *os.File
	if input, err = os.Open(src.String()); err == nil {
		defer func() {
			closeErr := input.Close()
			if err == nil {
				err = closeErr
			}
		}()
		if err = read(input); err == nil {
			return nil
		}
	}

	base.LogWarningVerbose(LogUFS, "OpenFile: %v", err)
	return err
}
func (ufs *UFSFrontEnd) Open(src Filename, read func(io.Reader) error) error {
	return ufs.OpenFile(src, func(f *os.File) error {
		return read(f)
	})
}
func (ufs *UFSFrontEnd) OpenBuffered(src Filename, read func(io.Reader) error) error {
	return ufs.Open(src, func(r io.Reader) error {
		var buffered bufio.Reader
		buffered.Reset(r)
		return read(&buffered)
	})
}
func (ufs *UFSFrontEnd) ReadAll(src Filename) ([]byte, error) {
	var raw []byte
	err := ufs.OpenFile(src, func(f *os.File) (err error) {
		raw, err = io.ReadAll(f)
		return
	})
	return raw, err
}
