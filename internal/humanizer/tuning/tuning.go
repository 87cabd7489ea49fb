// Package tuning loads humanizer.Config from layered sources.
// Precedence, lowest first: defaults, YAML file, HUMANIZER_* env, changed flags.
package tuning

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yungbote/humanizer-backend/internal/humanizer"
)

const EnvPrefix = "HUMANIZER_"

// Load builds the rewriter configuration. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (humanizer.Config, error) {
	k := koanf.New(".")
	defaults := humanizer.DefaultConfig().Map()

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return humanizer.Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return humanizer.Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return humanizer.Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if _, ok := defaults[key]; !ok {
			return ""
		}
		return key
	}), nil); err != nil {
		return humanizer.Config{}, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := defaults[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return humanizer.Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg humanizer.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return humanizer.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return humanizer.Config{}, fmt.Errorf("invalid humanizer config: %w", err)
	}
	return cfg, nil
}

// RegisterFlags adds one flag per config key, using kebab-case names.
func RegisterFlags(fs *pflag.FlagSet) {
	d := humanizer.DefaultConfig()
	fs.Float64("opener-probability", d.OpenerProbability, "chance of prefixing the first sentence with an opener")
	fs.Float64("lexicon-probability", d.LexiconProbability, "chance each formal phrase is swapped for its casual form")
	fs.Float64("contraction-probability", d.ContractionProbability, "chance each contraction is folded")
	fs.Float64("filler-probability", d.FillerProbability, "chance of a filler in a long sentence")
	fs.Float64("clarifier-probability", d.ClarifierProbability, "chance of a mid-sentence clarifier")
	fs.Float64("transition-probability", d.TransitionProbability, "chance of a transition on later sentences")
	fs.Float64("bridge-probability", d.BridgeProbability, "chance of a bridge on the middle sentence")
	fs.Float64("tag-probability", d.TagProbability, "chance of a trailing tag")
	fs.Float64("question-probability", d.QuestionProbability, "chance of inserting a rhetorical question")
	fs.Float64("clause-probability", d.ClauseProbability, "chance of extending a short sentence")
	fs.Float64("split-probability", d.SplitProbability, "chance of splitting a long sentence")
	fs.Float64("fronting-probability", d.FrontingProbability, "chance of fronting a because/although clause")
}

// YAML renders cfg in the same shape Load reads.
func YAML(cfg humanizer.Config) ([]byte, error) {
	return yamlv3.Marshal(cfg)
}
