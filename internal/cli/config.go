package cli

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraphs/pkg/errors"
	"github.com/matzehuels/depgraphs/pkg/pipeline"
	"github.com/matzehuels/depgraphs/pkg/publish"
	"github.com/matzehuels/depgraphs/pkg/render/nodelink"
)

// Environment variables that override the config file.
const (
	envInput     = "DEPGRAPHS_INPUT"
	envOutputDir = "DEPGRAPHS_OUTPUT_DIR"
	envFormat    = "DEPGRAPHS_FORMAT"
	envBackend   = "DEPGRAPHS_BACKEND"
	envDot       = "DEPGRAPHS_DOT"
	envAddr      = "DEPGRAPHS_ADDR"
)

// defaultAddr is the listen address of the data server.
const defaultAddr = ":3000"

// flagValues holds the persistent flags shared by all commands.
type flagValues struct {
	configPath string
	input      string
	outputDir  string
	format     string
	backend    string
	dot        string
}

func (f *flagValues) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/depgraphs/config.toml)")
	pf.StringVarP(&f.input, "input", "i", "", "package metadata file (default "+pipeline.DefaultInputPath+")")
	pf.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for rendered diagrams (default "+pipeline.DefaultOutputDir+")")
	pf.StringVarP(&f.format, "format", "f", "", "image format: png (default), svg")
	pf.StringVar(&f.backend, "backend", "", "rendering backend: graphviz (default), dot")
	pf.StringVar(&f.dot, "dot", "", "path to the dot executable (dot backend)")
}

// fileConfig is the layout of config.toml.
//
//	input = "/var/lib/slpkg/repos/ponce/data.json"
//	output_dir = "dependency_graphs"
//	format = "png"
//	backend = "graphviz"
//
//	[serve]
//	addr = ":3000"
//
//	[publish]
//	endpoint = "localhost:9000"
//	bucket = "depgraphs"
type fileConfig struct {
	Input     string           `toml:"input"`
	OutputDir string           `toml:"output_dir"`
	Format    string           `toml:"format"`
	Backend   string           `toml:"backend"`
	Dot       string           `toml:"dot"`
	Serve     serveConfig      `toml:"serve"`
	Publish   publish.S3Config `toml:"publish"`
}

type serveConfig struct {
	Addr string `toml:"addr"`
}

// settings is the fully resolved configuration of one command.
type settings struct {
	Pipeline pipeline.Config
	Addr     string
	Publish  publish.S3Config
}

// readConfigFile decodes a TOML config file. Unknown keys are rejected.
// If path is empty the default location is used, and a missing default
// file yields an empty config.
func (c *CLI) readConfigFile(path string) (fileConfig, error) {
	var fc fileConfig

	explicit := path != ""
	if !explicit {
		dir, err := c.configDir()
		if err != nil {
			return fc, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		notExist := stderrors.Is(err, fs.ErrNotExist)
		if notExist && !explicit {
			return fileConfig{}, nil
		}
		if notExist {
			return fc, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file not found: %s", path)
		}
		return fc, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return fc, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return fc, nil
}

// resolve layers defaults, config file, environment and flags, in that order
// of increasing precedence. changed reports whether a flag was set.
func (c *CLI) resolve(changed func(name string) bool) (settings, error) {
	fc, err := c.readConfigFile(c.flags.configPath)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		Pipeline: pipeline.DefaultConfig(),
		Addr:     defaultAddr,
	}

	// Config file
	overlay(&s.Pipeline.InputPath, fc.Input)
	overlay(&s.Pipeline.OutputDir, fc.OutputDir)
	overlayFormat(&s.Pipeline.Format, fc.Format)
	overlay(&s.Pipeline.Backend, fc.Backend)
	overlay(&s.Pipeline.DotPath, fc.Dot)
	overlay(&s.Addr, fc.Serve.Addr)

	// Environment
	overlay(&s.Pipeline.InputPath, c.Getenv(envInput))
	overlay(&s.Pipeline.OutputDir, c.Getenv(envOutputDir))
	overlayFormat(&s.Pipeline.Format, c.Getenv(envFormat))
	overlay(&s.Pipeline.Backend, c.Getenv(envBackend))
	overlay(&s.Pipeline.DotPath, c.Getenv(envDot))
	overlay(&s.Addr, c.Getenv(envAddr))

	s.Publish = publish.ConfigFromEnv(c.Getenv).Merge(fc.Publish)
	s.Publish.SetDefaults()

	// Flags
	if changed("input") {
		s.Pipeline.InputPath = c.flags.input
	}
	if changed("output-dir") {
		s.Pipeline.OutputDir = c.flags.outputDir
	}
	if changed("format") {
		s.Pipeline.Format = nodelink.Format(strings.ToLower(c.flags.format))
	}
	if changed("backend") {
		s.Pipeline.Backend = c.flags.backend
	}
	if changed("dot") {
		s.Pipeline.DotPath = c.flags.dot
	}

	// The dot path implies the dot backend unless a backend was chosen explicitly.
	if s.Pipeline.DotPath != "" && fc.Backend == "" && c.Getenv(envBackend) == "" && !changed("backend") {
		s.Pipeline.Backend = nodelink.BackendDot
	}

	if err := s.Pipeline.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func overlayFormat(dst *nodelink.Format, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = nodelink.Format(strings.ToLower(v))
	}
}
