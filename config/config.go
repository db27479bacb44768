package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultPort      = "3000"
	defaultStaticDir = "static"
	defaultUploadDir = "static/uploads"

	// maxUploadBytes caps a single audio upload at 10 MiB.
	maxUploadBytes = 10 << 20
	// maxJSONBytes caps JSON request bodies at 10 KB.
	maxJSONBytes = 10 << 10
)

type Config struct {
	Port      string `mapstructure:"port"`
	BaseURL   string `mapstructure:"base_url"`
	StaticDir string `mapstructure:"static_dir"`
	UploadDir string `mapstructure:"upload_dir"`

	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	MaxJSONBytes   int64 `mapstructure:"max_json_bytes"`
}

// Load reads configuration from an optional config.yaml with
// environment-variable overrides on top.
func Load() Config {
	viper.SetDefault("port", defaultPort)
	viper.SetDefault("static_dir", defaultStaticDir)
	viper.SetDefault("upload_dir", defaultUploadDir)
	viper.SetDefault("max_upload_bytes", maxUploadBytes)
	viper.SetDefault("max_json_bytes", maxJSONBytes)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("base_url", "BASE_URL")
	_ = viper.BindEnv("static_dir", "STATIC_DIR")
	_ = viper.BindEnv("upload_dir", "UPLOAD_DIR")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	return c
}
