package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/scriptmeta/export"
	"github.com/Alia5/scriptmeta/internal/configpaths"
	"github.com/Alia5/scriptmeta/meta"
)

// formatAuto picks the format from the file extension.
const formatAuto = "auto"

type Export struct {
	Output string `help:"Destination file; stdout when empty" type:"path" env:"SCRIPTMETA_EXPORT_OUTPUT"`
	Format string `help:"Document format; auto infers it from the output extension and defaults to ron" default:"auto" enum:"auto,ron,json,yaml,toml" env:"SCRIPTMETA_EXPORT_FORMAT"`
}

// Run is called by Kong when the export command is executed.
func (e *Export) Run(logger *slog.Logger) error {
	return e.write(meta.CollectSchema(), os.Stdout, logger)
}

func (e *Export) write(s meta.Schema, stdout io.Writer, logger *slog.Logger) error {
	f, err := resolveFormat(e.Format, e.Output)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, s, f); err != nil {
		return fmt.Errorf("export schema: %w", err)
	}

	if e.Output == "" {
		// stdout carries the document, keep it clean of info logs
		logger.Debug("Exporting schema to stdout", "scripts", len(s.Scripts), "format", f)
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	if err := configpaths.EnsureDir(e.Output); err != nil {
		return err
	}
	if err := os.WriteFile(e.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", e.Output, err)
	}
	logger.Info("Exported schema", "path", e.Output, "scripts", len(s.Scripts), "format", f)
	return nil
}

func resolveFormat(name, path string) (export.Format, error) {
	if name == "" || name == formatAuto {
		return export.FormatFromPath(path), nil
	}
	return export.ParseFormat(name)
}
