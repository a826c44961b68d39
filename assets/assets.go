package assets

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/chaininsights/blog/config"
)

// Dir is the output directory for bundled assets, relative to the site output.
const Dir = "_assets"

// Asset is a bundled file kept in memory until the build writes it.
type Asset struct {
	// OutputPath is slash-separated and relative to the output directory.
	OutputPath string
	PublicPath string
	Contents   []byte
	Stylesheet bool
}

var fileLoaders = map[string]api.Loader{
	".woff":  api.LoaderFile,
	".woff2": api.LoaderFile,
	".ttf":   api.LoaderFile,
	".svg":   api.LoaderFile,
	".png":   api.LoaderFile,
	".jpg":   api.LoaderFile,
	".gif":   api.LoaderFile,
	".webp":  api.LoaderFile,
}

// siteAbsolutePaths keeps imports and url() references starting with "/" as they are.
// They point into the published site, not the source tree.
var siteAbsolutePaths = api.Plugin{
	Name: "site-absolute-paths",
	Setup: func(build api.PluginBuild) {
		build.OnResolve(api.OnResolveOptions{Filter: "^/"}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
			if args.Kind == api.ResolveEntryPoint {
				return api.OnResolveResult{}, nil
			}
			return api.OnResolveResult{Path: args.Path, External: true}, nil
		})
	},
}

// urlSafeHash drops every character of an esbuild hash that is not a letter or digit.
func urlSafeHash(hash string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, hash)
}

// CompileStylesheets bundles every global stylesheet of the site with esbuild. CSS
// outputs are renamed to <name>_<hash>.css; referenced files keep esbuild's names.
// Absolute url() references and imports named after build plugins are left untouched.
func CompileStylesheets(root string, cfg *config.SiteConfig) ([]Asset, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}


	var emitted []Asset
	for _, css := range cfg.CSS {
		source := config.ResolvePath(absRoot, css)
		if _, err := os.Stat(source); err != nil {
			return nil, errors.Wrapf(err, "stylesheet %s", css)
		}

		result := api.Build(api.BuildOptions{
			EntryPoints:      []string{source},
			AbsWorkingDir:    absRoot,
			Bundle:           true,
			MinifyWhitespace: true,
			MinifySyntax:     true,
			External:         cfg.Build.Plugins,
			Plugins:          []api.Plugin{siteAbsolutePaths},
			Loader:           fileLoaders,
			LogLevel:         api.LogLevelSilent,
			Write:            false,
			Outdir:           filepath.Join(absRoot, Dir),
		})

		if len(result.Errors) > 0 {
			msg := result.Errors[0]
			if msg.Location != nil {
				return nil, errors.Errorf("bundle %s: %s:%d: %s", css, msg.Location.File, msg.Location.Line, msg.Text)
			}
			return nil, errors.Errorf("bundle %s: %s", css, msg.Text)
		}
		for _, w := range result.Warnings {
			log.Warn().Str("stylesheet", css).Msg(w.Text)
		}

		for _, out := range result.OutputFiles {
			name := filepath.Base(out.Path)
			ext := filepath.Ext(name)
			isCSS := strings.EqualFold(ext, ".css")
			if isCSS {
				name = fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), urlSafeHash(out.Hash), ext)
			}

			outputPath := path.Join(Dir, name)
			emitted = append(emitted, Asset{
				OutputPath: outputPath,
				PublicPath: cfg.URL(outputPath),
				Contents:   out.Contents,
				Stylesheet: isCSS,
			})
		}

		log.Debug().Str("stylesheet", css).Int("outputs", len(result.OutputFiles)).Msg("Stylesheet bundled")
	}

	return emitted, nil
}

// Write stores assets under outDir.
func Write(outDir string, assets []Asset) error {
	for _, a := range assets {
		dest := filepath.Join(outDir, filepath.FromSlash(a.OutputPath))
		if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
			return errors.WithStack(err)
		}
		if err := os.WriteFile(dest, a.Contents, 0644); err != nil {
			return errors.Wrapf(err, "write asset %s", a.OutputPath)
		}
	}
	return nil
}
