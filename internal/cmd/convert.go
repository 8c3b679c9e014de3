package cmd

import (
	"log/slog"

	"github.com/Alia5/scriptmeta/meta"
)

type Convert struct {
	Input  string `arg:"" name:"input" help:"Source schema document" type:"existingfile"`
	Output string `arg:"" name:"output" help:"Destination file" type:"path"`
	From   string `help:"Source format; auto infers it from the input extension" default:"auto" enum:"auto,ron,json,yaml,toml"`
	To     string `help:"Destination format; auto infers it from the output extension" default:"auto" enum:"auto,ron,json,yaml,toml"`
}

// Run is called by Kong when the convert command is executed.
func (c *Convert) Run(logger *slog.Logger) error {
	s, err := readSchema(c.Input, c.From)
	if err != nil {
		return err
	}
	return c.write(s, logger)
}

func (c *Convert) write(s meta.Schema, logger *slog.Logger) error {
	out := Export{Output: c.Output, Format: c.To}
	return out.write(s, nil, logger)
}
