package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/tonesandtones/httpstatus/util/cliflags"
)

// DefaultConfig maps dotted config keys to their default values.
type DefaultConfig map[string]any

type ParseOptions struct {
	// Cli is the cli.Context from urfave/cli
	Cli *cli.Context

	// CliMap is a map of cli flag names to config keys
	CliMap map[string]string

	// Defaults is a map of default values
	Defaults DefaultConfig

	// EnvPrefix is the prefix for env vars
	EnvPrefix string

	// FileName is the name of the configuration file to load.
	// Files ending in .env are parsed as dotenv, all others as json.
	FileName string

	// Schema validates json configuration files before loading
	Schema *gojsonschema.Schema

	// Log is the logger to use
	Log *zap.Logger
}

// Parse loads the configuration from defaults, the configuration file,
// env vars and cli flags, in this order. Later sources take precedence.
func Parse[C any](opt ParseOptions) (C, error) {

	var log *zap.Logger
	if opt.Log != nil {
		log = opt.Log
	} else {
		log = zap.NewNop()
	}

	var config C

	k := koanf.New(".")

	if opt.Defaults != nil {
		if err := k.Load(confmap.Provider(opt.Defaults, "."), nil); err != nil {
			log.Error("error loading defaults", zap.Error(err))
			return config, err
		}
	}

	if opt.FileName != "" {
		if err := loadFile(k, opt); err != nil {
			log.Error("error parsing file",
				zap.Error(err),
				zap.String("file", opt.FileName),
			)
			return config, err
		}
	}

	transformPrefixedEnv := func(s string) string {
		key := transformEnv(s, opt.EnvPrefix)

		// without a prefix every process env var is a candidate,
		// so only keys with a default are accepted
		if opt.EnvPrefix == "" && opt.Defaults != nil {
			if _, ok := opt.Defaults[key]; !ok {
				return ""
			}
		}

		return key
	}

	if err := k.Load(env.Provider(opt.EnvPrefix, ".", transformPrefixedEnv), nil); err != nil {
		log.Error("error parsing env vars", zap.Error(err))
		return config, err
	}

	if opt.Cli != nil {
		transformFlag := func(s string) string {
			if opt.CliMap != nil {
				if name, ok := opt.CliMap[s]; ok {
					return name
				}
			}

			// replace - with _
			return strings.ReplaceAll(strings.ToLower(s), "-", "_")
		}

		if err := k.Load(cliflags.Provider(opt.Cli, ".", transformFlag), nil); err != nil {
			log.Error("error parsing cli flags", zap.Error(err))
			return config, err
		}
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		log.Error("error unmarshalling config", zap.Error(err))
		return config, err
	}

	return config, nil
}

func loadFile(k *koanf.Koanf, opt ParseOptions) error {
	if strings.EqualFold(filepath.Ext(opt.FileName), ".env") {
		// dotenv keys follow the env var naming rules
		parser := dotenv.ParserEnv("", ".", func(s string) string {
			return transformEnv(s, "")
		})
		return k.Load(file.Provider(opt.FileName), parser)
	}

	if opt.Schema != nil {
		if err := validateFile(opt.FileName, opt.Schema); err != nil {
			return err
		}
	}

	return k.Load(file.Provider(opt.FileName), json.Parser())
}

func validateFile(fileName string, schema *gojsonschema.Schema) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}

	if !res.Valid() {
		return NewValidationError(fileName, res)
	}

	return nil
}

func transformEnv(s, prefix string) string {
	// allow specifying nested env vars w/ __
	normalized := strings.ReplaceAll(strings.ToLower(s), "__", ".")
	// split normalized env var by separator
	parts := strings.Split(normalized, ".")
	// pop prefix if it is set
	if prefix != "" {
		_, parts = parts[0], parts[1:]
	}
	// create final string
	return strings.Join(parts, ".")
}
