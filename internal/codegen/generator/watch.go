package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alia5/scriptmeta/internal/codegen/scanner"
)

// DefaultDebounce is how long Watch waits for source changes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watch runs the generator once and then again after Go sources below the
// root change, until ctx is cancelled. Failed runs are logged and do not
// stop the watch.
func (g *Generator) Watch(ctx context.Context, debounce time.Duration) error {
	if g.opts.Check {
		return errors.New("watch cannot be combined with check")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	root, err := filepath.Abs(g.opts.Root)
	if err != nil {
		return err
	}
	if err := addDirs(w, root); err != nil {
		return err
	}
	registry := ""
	if g.opts.Registry != "" {
		registry = filepath.Join(root, g.opts.Registry)
	}

	g.runLogged()
	g.logger.Info("Watching for changes", "root", root)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			g.logger.Warn("Watcher error", "error", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addDirs(w, ev.Name); err != nil {
						g.logger.Warn("Failed to watch directory", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if !relevant(ev.Name, registry) {
				continue
			}
			g.logger.Debug("Source changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case <-timer.C:
			g.runLogged()
		}
	}
}

func (g *Generator) runLogged() {
	res, err := g.Run()
	if err != nil {
		g.logger.Error("Generation failed", "error", err)
		return
	}
	if !res.Changed() {
		g.logger.Debug("Generated files up to date")
	}
}

// relevant reports whether a change to path can affect generated output.
func relevant(path, registry string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == scanner.GeneratedFile {
		return false
	}
	return registry == "" || filepath.Clean(path) != filepath.Clean(registry)
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			name := d.Name()
			if name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
