package commands

import (
	"os"

	"github.com/spf13/viper"
)

// Config carries the page settings a script evaluation starts from.
type Config interface {
	PageName() string
	Grid() float64
}

// LoadConfig resolves settings from a .jade config file (yaml implicit)
// and JADE_* environment variables. A missing config file is not an
// error; the defaults apply.
func LoadConfig() (Config, error) {
	viper.SetDefault("page", "drawing")
	viper.SetDefault("grid", 0.0)
	viper.SetConfigName(".jade")
	viper.SetEnvPrefix("JADE")
	viper.AutomaticEnv()

	if override := os.Getenv("JADE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &fileConfig{Page: viper.GetString("page"), GridSpacing: viper.GetFloat64("grid")}, nil
}

type fileConfig struct {
	Page        string  `json:"page"`
	GridSpacing float64 `json:"grid"`
}

func (f *fileConfig) PageName() string { return f.Page }
func (f *fileConfig) Grid() float64    { return f.GridSpacing }
