package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/poppolopoppo/slngen/internal/base"
)

var LogConfig = base.NewLogCategory("Config")

/***************************************
 * HCL config file
 ***************************************/

// NewConfigEvalContext exposes process environment to config files as `env.NAME`.
func NewConfigEvalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, it := range environ {
		if name, value, ok := strings.Cut(it, "="); ok && len(name) > 0 {
			vars[name] = cty.StringVal(value)
		}
	}

	envValue := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		envValue = cty.MapVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envValue,
		},
	}
}

// DecodeHclConfig decodes an HCL document in dst, a struct annotated with `hcl:"..."` tags.
func DecodeHclConfig(src []byte, filename string, ctx *hcl.EvalContext, dst interface{}) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL config %s: %w", filename, diags)
	}

	if diags = gohcl.DecodeBody(file.Body, ctx, dst); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL config %s: %w", filename, diags)
	}
	return nil
}

// LoadHclConfig decodes a config file, a nil environ exposes the process environment.
func LoadHclConfig(src Filename, environ []string, dst interface{}) error {
	defer base.LogBenchmark(LogConfig, "loading config from %q", src).Close()

	raw, err := UFS.ReadAll(src)
	if err != nil {
		return err
	}
	if mtime, err := UFS.MTime(src); err == nil {
		base.LogVeryVerbose(LogConfig, "config %q was modified on %v", src, mtime)
	}
	if environ == nil {
		environ = os.Environ()
	}
	return DecodeHclConfig(raw, src.String(), NewConfigEvalContext(environ), dst)
}

/***************************************
 * Environment
 ***************************************/

// LoadEnvConfig fills dst from prefixed environment variables, using `env:"..."` tags.
// A nil environment reads the process environment.
func LoadEnvConfig(prefix string, environment map[string]string, dst interface{}) error {
	options := env.Options{
		Prefix:      prefix,
		Environment: environment,
	}
	if err := env.ParseWithOptions(dst, options); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	base.LogTrace(LogConfig, "parsed %s* environment variables", prefix)
	return nil
}
