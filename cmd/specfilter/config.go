package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// envPrefix scopes environment overrides, e.g. SPECFILTER_POLICY=method.
const envPrefix = "SPECFILTER_"

// Config holds the resolved command settings. Precedence, lowest first:
// defaults, -config file, SPECFILTER_* environment, explicit flags.
type Config struct {
	Input       string   `koanf:"input"`
	Output      string   `koanf:"output"`
	Policy      string   `koanf:"policy"`
	Match       string   `koanf:"match"`
	Format      string   `koanf:"format"`
	Sections    []string `koanf:"sections"`
	Report      bool     `koanf:"report"`
	Interactive bool     `koanf:"interactive"`
	NoClobber   bool     `koanf:"no_clobber"`
	Verbose     bool     `koanf:"verbose"`
}

var defaults = map[string]any{
	"input":  "cloudflare.json",
	"policy": "path",
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"input":       "input",
	"output":      "output",
	"policy":      "policy",
	"match":       "match",
	"format":      "format",
	"sections":    "sections",
	"report":      "report",
	"interactive": "interactive",
	"no-clobber":  "no_clobber",
	"v":           "verbose",
}

func loadConfig(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("specfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML file with default settings")
	fs.String("input", "cloudflare.json", "OpenAPI document path or URL")
	fs.String("output", "", "output path (defaults to <name>-filtered<ext> next to the input)")
	fs.String("policy", "path", "path selection policy: path or method")
	fs.String("match", "", "substring the policy matches (defaults to the policy's own)")
	fs.String("format", "", "output format: json or yaml (defaults to the input format)")
	fs.String("sections", "", "comma separated top-level sections to keep (paths is always kept)")
	fs.Bool("report", false, "list the operations kept in the output")
	fs.Bool("interactive", false, "ask before replacing an existing output file")
	fs.Bool("no-clobber", false, "fail instead of replacing an existing output file")
	fs.Bool("v", false, "log kept and dropped paths")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if *configPath != "" {
		if err := k.Load(file.Provider(*configPath), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", *configPath, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	explicit := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			explicit[key] = f.Value.String()
		}
	})
	if err := k.Load(confmap.Provider(explicit, "."), nil); err != nil {
		return Config{}, fmt.Errorf("load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Sections = splitList(cfg.Sections)
	return cfg, nil
}

func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, envPrefix))
}

// splitList flattens comma separated entries coming from flags or env.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
