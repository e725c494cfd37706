package cmd

import (
	"github.com/poppolopoppo/slngen/internal/base"
	"github.com/poppolopoppo/slngen/internal/io"
	"github.com/poppolopoppo/slngen/utils"
)

type ExportFlags struct {
	Output      utils.Filename
	Compression base.CompressionLevel
}

func (x *ExportFlags) Flags(cfv utils.CommandFlagsVisitor) {
	cfv.Variable("Output", "merged manifest file (.json or .yaml, optionally .lz4 or .zst)", &x.Output)
	cfv.Variable("Compression", "compression level when the output is compressed ["+base.JoinString("|", base.CompressionLevels()...)+"]", &x.Compression)
}

// ExportManifests concatenates every manifest in one file, the output format follows its extension.
func ExportManifests(output utils.Filename, level base.CompressionLevel, manifests ...utils.Filename) (io.Manifest, error) {
	manifest, err := io.ReadManifests(manifests...)
	if err != nil {
		return manifest, err
	}
	if err = io.WriteManifest(output, manifest, level); err != nil {
		return manifest, err
	}
	base.LogClaim(LogCmd, "exported %d project record(s) and %d solution item(s) to %q",
		len(manifest.Projects), len(manifest.SolutionItems), output)
	return manifest, nil
}

type ExportCommand struct {
	Flags  ExportFlags
	Inputs []utils.Filename
}

func (x *ExportCommand) Init(cc utils.CommandContext) error {
	cc.Options(
		utils.OptionCommandParsableFlags("ExportFlags", "manifest export options", &x.Flags),
		utils.OptionCommandConsumeMany("manifest", "project metadata manifests to merge", &x.Inputs, false))
	return nil
}

func (x *ExportCommand) Run(cc utils.CommandContext) error {
	flags := ExportFlags{Compression: base.COMPRESSION_LEVEL_BALANCED}
	if err := cc.ReplayFlags(&flags); err != nil {
		return err
	}
	if !flags.Output.Valid() {
		flags.Output = utils.UFS.File("slngen-manifest.json")
	}
	_, err := ExportManifests(flags.Output, flags.Compression, x.Inputs...)
	return err
}

var CommandExportJson = utils.NewCommandable(
	"Export",
	"export-json",
	"merge project metadata manifests in a single file",
	&ExportCommand{Flags: ExportFlags{Compression: base.COMPRESSION_LEVEL_BALANCED}})
