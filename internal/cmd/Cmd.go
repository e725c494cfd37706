package cmd

import (
	"path/filepath"
	"strings"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/utils"
)

var LogCmd = base.NewLogCategory("Cmd")

// EnvPrefix namespaces every environment variable read by slngen commands.
const EnvPrefix = "SLNGEN_"

// processEnvironment is nil outside of tests, which means reading the process environment.
var processEnvironment map[string]string

/***************************************
 * Config layers
 ***************************************/

func resolvePath(root utils.Directory, in string) string {
	if len(in) == 0 || filepath.IsAbs(in) || !root.Valid() {
		return in
	}
	return filepath.Join(root.Path, in)
}

func applyString(dst utils.PersistentVar, in string) error {
	if len(in) == 0 {
		return nil
	}
	return dst.Set(in)
}
func applyList(dst utils.PersistentVar, in []string) error {
	if len(in) == 0 {
		return nil
	}
	return dst.Set(strings.Join(in, ";"))
}
func applyBool(dst *utils.BoolVar, in *bool) {
	if in != nil {
		*dst = utils.MakeBoolVar(*in)
	}
}

func environ() []string {
	if processEnvironment == nil {
		return nil
	}
	result := make([]string, 0, len(processEnvironment))
	for _, name := range base.SortedKeys(processEnvironment) {
		result = append(result, name+"="+processEnvironment[name])
	}
	return result
}
