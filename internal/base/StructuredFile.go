package base

import (
	"fmt"
	"io"
	"strings"
)

const STRUCTUREDFILE_DEFAULT_TAB = "\t"

type StructuredFileFlags int32

const (
	STRUCTUREDFILE_NONE StructuredFileFlags = 0
	STRUCTUREDFILE_CRLF StructuredFileFlags = 1 << 0
)

type FileSite struct {
	Line   int
	Column int
}

func (si *FileSite) LineBreak() {
	si.Line++
	si.Column = 1
}

// StructuredFile is an indentation aware line writer.
// The first write error is kept and returned by Err(), later writes are discarded.
type StructuredFile struct {
	indent string
	tab    string
	eol    string
	flags  StructuredFileFlags
	site   FileSite
	writer io.Writer
	err    error
}

func NewStructuredFile(writer io.Writer, tab string, flags StructuredFileFlags) *StructuredFile {
	eol := "\n"
	if (flags & STRUCTUREDFILE_CRLF) == STRUCTUREDFILE_CRLF {
		eol = "\r\n"
	}
	return &StructuredFile{
		indent: "",
		tab:    tab,
		eol:    eol,
		flags:  flags,
		site: FileSite{
			Line:   1,
			Column: 1,
		},
		writer: writer,
	}
}

func (sf *StructuredFile) Site() FileSite { return sf.site }
func (sf *StructuredFile) Err() error     { return sf.err }

func (sf *StructuredFile) write(txt string) {
	if sf.err == nil {
		_, sf.err = io.WriteString(sf.writer, txt)
	}
}

func (sf *StructuredFile) IndentIFN() {
	if sf.site.Column == 1 && len(sf.indent) > 0 {
		sf.site.Column += len(sf.indent)
		sf.write(sf.indent)
	}
}
func (sf *StructuredFile) BeginIndent() {
	sf.indent += sf.tab
}
func (sf *StructuredFile) EndIndent() {
	Assert(func() bool { return len(sf.indent) >= len(sf.tab) })
	sf.indent = sf.indent[:len(sf.indent)-len(sf.tab)]
}
func (sf *StructuredFile) ScopeIndent(infix func()) {
	if infix != nil {
		sf.LineBreak()
		sf.BeginIndent()
		infix()
		sf.LineBreak()
		sf.EndIndent()
	}
}

func (sf *StructuredFile) Print(format string, args ...interface{}) {
	sf.IndentIFN()
	sf.Print_NoIndent(format, args...)
}
func (sf *StructuredFile) Println(format string, args ...interface{}) {
	sf.IndentIFN()
	sf.Println_NoIndent(format, args...)
}
func (sf *StructuredFile) LineBreak() {
	if sf.site.Column > 1 {
		sf.site.LineBreak()
		sf.write(sf.eol)
	}
}
func (sf *StructuredFile) Align(column int) {
	if sf.site.Column < column {
		sf.write(strings.Repeat(" ", column-sf.site.Column))
		sf.site.Column = column
	}
}

func (sf *StructuredFile) Print_NoIndent(format string, args ...interface{}) {
	txt := format
	if len(args) > 0 {
		txt = fmt.Sprintf(format, args...)
	}
	sf.site.Column += len(txt)
	sf.write(txt)
}
func (sf *StructuredFile) Println_NoIndent(format string, args ...interface{}) {
	txt := format
	if len(args) > 0 {
		txt = fmt.Sprintf(format, args...)
	}
	sf.site.LineBreak()
	sf.write(txt)
	sf.write(sf.eol)
}
