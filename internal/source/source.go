// Package source loads tabular input files into a table.Table.
//
// Loaders register themselves by format name in init(). The format of a file
// is taken from Options.Format when set, otherwise from the file extension.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/exupdate/internal/table"
)

// Options controls how a file is read.
type Options struct {
	// Format forces a registered format, bypassing extension detection.
	Format string
	// Sheet selects a worksheet for spreadsheet formats (default: first sheet).
	Sheet string
}

// Loader reads one file into a table.
type Loader interface {
	Load(ctx context.Context, path string, opts Options) (*table.Table, error)
}

// Format describes a registered input format.
type Format struct {
	Name       string
	Extensions []string
	New        func(*slog.Logger) Loader
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Format)
)

// Register adds a format to the registry.
// Called by loader implementations in their init() functions.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f.Name] = f
}

// Lookup retrieves a format by name.
func Lookup(name string) (Format, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// ListFormats returns all registered format names (sorted).
func ListFormats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect returns the format registered for the extension of path.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, f := range registry {
		for _, e := range f.Extensions {
			if e == ext {
				return f, nil
			}
		}
	}

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return Format{}, &UnknownFormatError{Format: ext, Available: names}
}

// Open loads path with the loader chosen by opts.Format or by extension.
// The returned table is named after the file's base name.
func Open(ctx context.Context, path string, opts Options, logger *slog.Logger) (*table.Table, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var f Format
	if opts.Format != "" {
		var ok bool
		f, ok = Lookup(opts.Format)
		if !ok {
			return nil, &UnknownFormatError{Format: opts.Format, Available: ListFormats()}
		}
	} else {
		var err error
		f, err = Detect(path)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("loading source", "path", path, "format", f.Name, "sheet", opts.Sheet)

	t, err := f.New(logger).Load(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", filepath.Base(path), err)
	}
	t.Name = filepath.Base(path)

	logger.Debug("loaded source", "table", t.String())
	return t, nil
}

// UnknownFormatError is returned when no loader handles a file.
type UnknownFormatError struct {
	Format    string
	Available []string
}

func (e *UnknownFormatError) Error() string {
	name := e.Format
	if name == "" {
		name = "(no extension)"
	}
	return fmt.Sprintf("unknown input format %q\nAvailable formats: %v\nHint: use --format to pick one", name, e.Available)
}
