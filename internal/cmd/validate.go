package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Alia5/scriptmeta/export"
	"github.com/Alia5/scriptmeta/meta"
)

type Validate struct {
	File   string `arg:"" help:"Schema document to check" type:"existingfile"`
	Format string `help:"Document format; auto infers it from the file extension" default:"auto" enum:"auto,ron,json,yaml,toml"`
}

// Run is called by Kong when the validate command is executed.
func (v *Validate) Run(logger *slog.Logger) error {
	s, err := readSchema(v.File, v.Format)
	if err != nil {
		return err
	}

	if err := s.Validate(); err != nil {
		issues := unwrapJoined(err)
		for _, issue := range issues {
			logger.Error("Schema issue", "file", v.File, "issue", issue.Error())
		}
		return fmt.Errorf("%s: %d issue(s)", v.File, len(issues))
	}
	logger.Info("Schema is valid", "file", v.File, "scripts", len(s.Scripts))
	return nil
}

func readSchema(path, format string) (meta.Schema, error) {
	f, err := resolveFormat(format, path)
	if err != nil {
		return meta.Schema{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return meta.Schema{}, err
	}
	defer file.Close()

	s, err := export.Decode(file, f)
	if err != nil {
		return meta.Schema{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func unwrapJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
