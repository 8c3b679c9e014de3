package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/scriptmeta/internal/codegen/generator"
)

type Gen struct {
	Root     string        `help:"Module directory to scan" default:"." type:"path" env:"SCRIPTMETA_GEN_ROOT"`
	Include  []string      `help:"Package directory globs to scan, relative to root (doublestar syntax)" sep:"," env:"SCRIPTMETA_GEN_INCLUDE"`
	Exclude  []string      `help:"Package directory globs to skip, relative to root" sep:"," env:"SCRIPTMETA_GEN_EXCLUDE"`
	Registry string        `help:"Registry table file relative to root; empty skips it" default:"internal/registry/scripts.go" env:"SCRIPTMETA_GEN_REGISTRY"`
	Check    bool          `help:"Fail if generated files are out of date instead of writing them" xor:"mode" env:"SCRIPTMETA_GEN_CHECK"`
	Watch    bool          `help:"Regenerate whenever Go sources change" xor:"mode" env:"SCRIPTMETA_GEN_WATCH"`
	Debounce time.Duration `help:"Quiet period before a watch run" default:"250ms" env:"SCRIPTMETA_GEN_DEBOUNCE"`
}

func (g *Gen) options() generator.Options {
	return generator.Options{
		Root:     g.Root,
		Include:  g.Include,
		Exclude:  g.Exclude,
		Registry: g.Registry,
		Check:    g.Check,
	}
}

// Run is called by Kong when the gen command is executed.
func (g *Gen) Run(logger *slog.Logger) error {
	gen := generator.New(g.options(), logger)

	if g.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("Watching for script changes", "root", g.Root, "debounce", g.Debounce)
		return gen.Watch(ctx, g.Debounce)
	}

	res, err := gen.Run()
	if errors.Is(err, generator.ErrStale) {
		logger.Error("Generated files are out of date, run scriptmeta gen", "stale", len(res.Written)+len(res.Removed))
		return err
	}
	if err != nil {
		return err
	}
	logger.Info("Generation finished",
		"packages", res.Packages,
		"scripts", res.Scripts,
		"written", len(res.Written),
		"removed", len(res.Removed),
	)
	return nil
}
