// Package preset holds the static-hosting adapters applied to the build output.
package preset

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Preset adapts a finished output directory to a hosting target.
type Preset interface {
	Name() string
	Finalize(outDir string) error
}

var registry = map[string]Preset{
	"static":       staticPreset{},
	"github-pages": githubPages{},
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names lists registered presets.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type staticPreset struct{}

func (staticPreset) Name() string { return "static" }

func (staticPreset) Finalize(string) error { return nil }

// githubPages disables Jekyll processing so directories starting with "_" are served.
type githubPages struct{}

func (githubPages) Name() string { return "github-pages" }

func (githubPages) Finalize(outDir string) error {
	err := os.WriteFile(filepath.Join(outDir, ".nojekyll"), nil, 0644)
	return errors.WithStack(err)
}
