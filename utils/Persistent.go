package utils

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
)

// PersistentVar is a typed variable bound to a command-line switch, a config file
// attribute or an environment variable.
type PersistentVar interface {
	fmt.Stringer
	flag.Value
}

/***************************************
 * BoolVar
 ***************************************/

type BoolVar bool

func MakeBoolVar(enabled bool) BoolVar { return BoolVar(enabled) }

func (x BoolVar) Get() bool        { return bool(x) }
func (x BoolVar) IsBoolFlag() bool { return true }
func (x BoolVar) String() string   { return strconv.FormatBool(bool(x)) }
func (x *BoolVar) Set(in string) error {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "1", "true", "on", "yes":
		*x = true
	case "0", "false", "off", "no":
		*x = false
	default:
		return base.MakeUnexpectedValueError(x, in)
	}
	return nil
}
func (x BoolVar) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *BoolVar) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * StringVar
 ***************************************/

type StringVar string

func (x StringVar) Get() string    { return string(x) }
func (x StringVar) Empty() bool    { return len(x) == 0 }
func (x StringVar) String() string { return string(x) }
func (x *StringVar) Set(in string) error {
	*x = StringVar(in)
	return nil
}
func (x StringVar) MarshalText() ([]byte, error) {
	return []byte(x), nil
}
func (x *StringVar) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * FileSet
 ***************************************/

// FileSet accumulates filenames, either repeated switches or a ';' separated list.
type FileSet []Filename

func (x FileSet) Len() int { return len(x) }
func (x FileSet) String() string {
	return base.JoinString(";", x...)
}
func (x *FileSet) Set(in string) error {
	for _, it := range base.SplitList(in, ";") {
		var f Filename
		if err := f.Set(it); err != nil {
			return err
		}
		if f.Valid() {
			*x = append(*x, f)
		}
	}
	return nil
}
