package base

import (
	"fmt"
	"strings"
)

/***************************************
 * Create fmt.Stringer from a func
 ***************************************/

type lambdaStringer func() string

func (x lambdaStringer) String() string {
	return x()
}
func MakeStringer(fn func() string) fmt.Stringer {
	return lambdaStringer(fn)
}

func MakeString(x interface{}) string {
	if str, ok := x.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprint(x)
}

func JoinString[T fmt.Stringer](delim string, it ...T) string {
	sb := strings.Builder{}
	for i, x := range it {
		if i > 0 {
			sb.WriteString(delim)
		}
		sb.WriteString(x.String())
	}
	return sb.String()
}

/***************************************
 * Delimited lists (MSBuild style "a;b;c")
 ***************************************/

// SplitList cuts a delimited list, trimming blanks and dropping empty entries.
func SplitList(in string, delim string) (result []string) {
	for _, it := range strings.Split(in, delim) {
		if it = strings.TrimSpace(it); len(it) > 0 {
			result = append(result, it)
		}
	}
	return
}

/***************************************
 * StringSet: ordered, case-sensitive and without duplicates
 ***************************************/

type StringSet SetT[string]

func NewStringSet(x ...string) (result StringSet) {
	result = make(StringSet, 0, len(x))
	result.AppendUniq(x...)
	return
}

func (set StringSet) Len() int        { return len(set) }
func (set StringSet) Slice() []string { return set }
func (set StringSet) At(i int) string { return set[i] }
func (set StringSet) IndexOf(it string) (int, bool) {
	return IndexOf(it, set...)
}
func (set StringSet) Contains(it ...string) bool {
	return Contains(set, it...)
}
func (set *StringSet) Append(it ...string) *StringSet {
	*set = append(*set, it...)
	return set
}
func (set *StringSet) AppendUniq(it ...string) *StringSet {
	*set = AppendUniq(*set, it...)
	return set
}
func (set StringSet) Equals(other StringSet) bool {
	if len(set) != len(other) {
		return false
	}
	for i, it := range set {
		if other[i] != it {
			return false
		}
	}
	return true
}
func (set StringSet) Join(delim string) string {
	return strings.Join(set, delim)
}
func (set StringSet) String() string {
	return set.Join(";")
}
func (set *StringSet) Set(in string) error {
	*set = NewStringSet(SplitList(in, ";")...)
	return nil
}
