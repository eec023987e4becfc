package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the shell settings.
type Config struct {
	BaseURL     string // prefix for every address, as supplied by the hosting environment
	InitialPath string // address at startup when not running in a browser
	UseFragment bool   // keep the path in the URL fragment
	RoutesFile  string // optional routes.toml replacing the built in table
	Logging     Logging
}

// Logging holds the logger settings.
type Logging struct {
	Level  string // Debug, Info, Warn or Error
	Output string // "stdout" or "file"
	File   string // log file location when Output is "file"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("initial_path", "/")
	v.SetDefault("use_fragment", false)
	v.SetDefault("routes_file", "")
	v.SetDefault("logging.level", "Warn")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file", "vgnav.log")
}

// Load reads the configuration. With an empty path vgnav.toml is searched in
// config/ and the working directory and may be absent. Environment variables
// prefixed VGNAV_ override file values, e.g. VGNAV_BASE_URL or VGNAV_LOGGING_LEVEL.
func Load(path string) (Config, error) {

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("vgnav")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config/")
		v.AddConfigPath(".")
		v.SetConfigName("vgnav")
		v.SetConfigType("toml")
	}

	err := v.ReadInConfig()
	if err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := Config{
		BaseURL:     v.GetString("base_url"),
		InitialPath: v.GetString("initial_path"),
		UseFragment: v.GetBool("use_fragment"),
		RoutesFile:  v.GetString("routes_file"),
		Logging: Logging{
			Level:  v.GetString("logging.level"),
			Output: v.GetString("logging.output"),
			File:   v.GetString("logging.file"),
		},
	}

	if !strings.HasPrefix(cfg.InitialPath, "/") {
		cfg.InitialPath = "/" + cfg.InitialPath
	}

	return cfg, nil
}
