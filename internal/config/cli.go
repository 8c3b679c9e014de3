// Package config holds the root kong grammar for the scriptmeta binary.
package config

import (
	"github.com/Alia5/scriptmeta/internal/cmd"

	"github.com/alecthomas/kong"
)

type Log struct {
	Level  string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"SCRIPTMETA_LOG_LEVEL"`
	Format string `help:"Log record format" default:"text" enum:"text,json" env:"SCRIPTMETA_LOG_FORMAT"`
	File   string `help:"Also write logs to this file" type:"path" env:"SCRIPTMETA_LOG_FILE"`
}

type CLI struct {
	Version    kong.VersionFlag `help:"Print the version and exit"`
	ConfigFile string           `name:"config" help:"Config file (json, yaml or toml); flags and env override it" type:"path" env:"SCRIPTMETA_CONFIG"`
	Log        Log              `embed:"" prefix:"log."`

	Gen      cmd.Gen           `cmd:"" help:"Generate script registration files from //scriptmeta: directives"`
	Export   cmd.Export        `cmd:"" help:"Export the schema of every linked script"`
	Validate cmd.Validate      `cmd:"" help:"Check a schema document for structural problems"`
	Convert  cmd.Convert       `cmd:"" help:"Re-encode a schema document in another format"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
