package io

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/sln"
	"github.com/poppolopoppo/slngen/utils"
)

/***************************************
 * ManifestFormat
 ***************************************/

type ManifestFormat int32

const (
	MANIFEST_FORMAT_JSON ManifestFormat = iota
	MANIFEST_FORMAT_YAML
)

func ManifestFormats() []ManifestFormat {
	return []ManifestFormat{
		MANIFEST_FORMAT_JSON,
		MANIFEST_FORMAT_YAML,
	}
}
func (x ManifestFormat) String() string {
	switch x {
	case MANIFEST_FORMAT_JSON:
		return "JSON"
	case MANIFEST_FORMAT_YAML:
		return "YAML"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x ManifestFormat) Extensions() []string {
	switch x {
	case MANIFEST_FORMAT_JSON:
		return []string{".json"}
	case MANIFEST_FORMAT_YAML:
		return []string{".yaml", ".yml"}
	default:
		base.UnexpectedValue(x)
		return nil
	}
}
func (x *ManifestFormat) Set(in string) error {
	for _, it := range ManifestFormats() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}

// ManifestFormatFromPath recognizes "name.json", "name.yaml.zst", "name.yml.lz4"...
func ManifestFormatFromPath(path string) (ManifestFormat, base.CompressionFormat, error) {
	compression, path := base.CompressionFormatFromPath(path)
	ext := filepath.Ext(path)
	for _, format := range ManifestFormats() {
		for _, it := range format.Extensions() {
			if strings.EqualFold(ext, it) {
				return format, compression, nil
			}
		}
	}
	return MANIFEST_FORMAT_JSON, compression, fmt.Errorf("unknown manifest format for %q", path)
}

/***************************************
 * Manifest
 ***************************************/

// Manifest is the on-disk form of the metadata handed over by a build pipeline.
type Manifest struct {
	Projects      []sln.ProjectMetadata      `json:"Projects" yaml:"Projects"`
	SolutionItems []sln.SolutionItemMetadata `json:"SolutionItems,omitempty" yaml:"SolutionItems,omitempty"`
}

func (x *Manifest) Append(other Manifest) {
	x.Projects = append(x.Projects, other.Projects...)
	x.SolutionItems = append(x.SolutionItems, other.SolutionItems...)
}

func (x *Manifest) Decode(src io.Reader, format ManifestFormat) error {
	switch format {
	case MANIFEST_FORMAT_JSON:
		return base.JsonDeserialize(x, src)
	case MANIFEST_FORMAT_YAML:
		decoder := yaml.NewDecoder(src)
		decoder.KnownFields(true)
		if err := decoder.Decode(x); err != nil && err != io.EOF {
			return err
		}
		return nil
	default:
		return base.MakeUnexpectedValueError(format, format)
	}
}

func (x *Manifest) Encode(dst io.Writer, format ManifestFormat) error {
	switch format {
	case MANIFEST_FORMAT_JSON:
		return base.JsonSerialize(x, dst, base.OptionJsonPrettyPrint(true))
	case MANIFEST_FORMAT_YAML:
		encoder := yaml.NewEncoder(dst)
		encoder.SetIndent(2)
		if err := encoder.Encode(x); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return base.MakeUnexpectedValueError(format, format)
	}
}

/***************************************
 * Manifest files
 ***************************************/

func ReadManifest(src utils.Filename) (result Manifest, err error) {
	format, compression, err := ManifestFormatFromPath(src.Basename)
	if err != nil {
		return
	}

	defer base.LogBenchmark(LogIO, "read %v manifest %q", format, src).Close()

	err = utils.UFS.OpenBuffered(src, func(r io.Reader) error {
		rd, err := base.NewCompressedReader(r, base.CompressionOptionFormat(compression))
		if err != nil {
			return err
		}
		defer rd.Close()
		return result.Decode(rd, format)
	})
	if err != nil {
		return result, fmt.Errorf("failed to read manifest %q: %w", src, err)
	}

	base.LogVerbose(LogIO, "read %d project record(s) and %d solution item(s) from %q",
		len(result.Projects), len(result.SolutionItems), src)
	return
}

// ReadManifests concatenates manifests in the given order.
func ReadManifests(srcs ...utils.Filename) (result Manifest, err error) {
	for _, src := range srcs {
		var manifest Manifest
		if manifest, err = ReadManifest(src); err != nil {
			return
		}
		result.Append(manifest)
	}
	return
}

func WriteManifest(dst utils.Filename, manifest Manifest, level base.CompressionLevel) error {
	format, compression, err := ManifestFormatFromPath(dst.Basename)
	if err != nil {
		return err
	}

	defer base.LogBenchmark(LogIO, "write %v manifest %q", format, dst).Close()

	return utils.UFS.SafeCreate(dst, func(w io.Writer) error {
		wr, err := base.NewCompressedWriter(w,
			base.CompressionOptionFormat(compression),
			base.CompressionOptionLevel(level))
		if err != nil {
			return err
		}
		if err = manifest.Encode(wr, format); err != nil {
			wr.Close()
			return err
		}
		return wr.Close()
	})
}
