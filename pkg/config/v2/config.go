package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-ozzo/ozzo-validation/v4/is"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mitchellh/mapstructure"

	"github.com/spf13/viper"
)

const (
	defaultExtension = "yaml"
	defaultTagName   = "yaml"
)

type Binder interface {
	Bind(v *viper.Viper) error
}

type Loader interface {
	Load(name, path, envPrefix string, binder Binder) (Config, error)
}

type Config struct {
	Server   Server   `yaml:"server"`
	Airtable Airtable `yaml:"airtable"`
	LogSink  LogSink  `yaml:"log_sink"`
	Slack    Slack    `yaml:"slack"`

	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server, validation.Required),
		validation.Field(&c.Airtable, validation.Required),
		validation.Field(&c.LogSink, validation.Required),
		validation.Field(&c.Slack),
		validation.Field(&c.LogLevel, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
	)
}

type Server struct {
	Address string `yaml:"address"`
	Port    string `yaml:"port"`
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Address, validation.Required, is.IP),
		validation.Field(&s.Port, validation.Required, is.Port),
	)
}

type Airtable struct {
	APIURL          string `yaml:"api_url"`
	BaseID          string `yaml:"base_id"`
	Token           string `yaml:"token"`
	CreateOnStartup bool   `yaml:"create_on_startup"`
	// TimeoutSeconds of zero means requests have no deadline.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// The token is not required, a missing token is reported by the API itself.
func (a Airtable) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.APIURL, validation.Required, is.URL),
		validation.Field(&a.BaseID, validation.Required),
		validation.Field(&a.TimeoutSeconds, validation.Min(0)),
	)
}

type LogSink struct {
	Capacity    int `yaml:"capacity"`
	RecentLimit int `yaml:"recent_limit"`
}

func (l LogSink) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&l.RecentLimit, validation.Required, validation.Min(1)),
	)
}

type Slack struct {
	WebhookURL string `yaml:"webhook_url"`
}

func (s Slack) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.WebhookURL, is.URL),
	)
}

type FileParts struct {
	FileName string
	Path     string
}

func ProcessConfigPath(configFile string) (FileParts, error) {
	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return FileParts{}, fmt.Errorf("convert to absolute path: %w", err)
	}

	// Extract file name and extension
	fileName := filepath.Base(absolutePath)
	path := filepath.Dir(absolutePath)
	extension := filepath.Ext(fileName)

	if strings.ReplaceAll(strings.ToLower(extension), ".", "") != defaultExtension {
		return FileParts{}, fmt.Errorf("config file must have extension %s, got: %s", defaultExtension, extension)
	}

	return FileParts{
		FileName: fileName[:len(fileName)-len(extension)],
		Path:     path,
	}, nil
}

// SetDefaults registers the values used when neither the config file nor the
// environment provides one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", "3000")
	v.SetDefault("airtable.api_url", "https://api.airtable.com/v0")
	v.SetDefault("airtable.base_id", "appEZQLiRm9cfnVkP")
	v.SetDefault("airtable.token", "")
	v.SetDefault("airtable.create_on_startup", true)
	v.SetDefault("airtable.timeout_seconds", 0)
	v.SetDefault("log_sink.capacity", 100)
	v.SetDefault("log_sink.recent_limit", 20)
	v.SetDefault("slack.webhook_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)
}

func NewFileSystemLoader() *FileSystemLoader {
	return &FileSystemLoader{}
}

type FileSystemLoader struct {
	// AllowMissing makes Load fall back to defaults and the environment when
	// the config file does not exist.
	AllowMissing bool
}

func (fs *FileSystemLoader) Load(name, path, envPrefix string, b Binder) (Config, error) {
	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName(name)
	v.SetConfigType(defaultExtension)

	SetDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // So that env vars are translated properly
	v.AutomaticEnv()

	if b != nil {
		err := b.Bind(v)
		if err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(envPrefix)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !fs.AllowMissing || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config

	err = v.Unmarshal(&config, func(cfg *mapstructure.DecoderConfig) {
		cfg.TagName = defaultTagName // We use yaml tags in the config structs so we can marshal to yaml
	})
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}

type EnvBinder struct {
	binders map[string]string
}

func (e *EnvBinder) Bind(v *viper.Viper) error {
	for envVar, key := range e.binders {
		err := v.BindEnv(key, envVar)
		if err != nil {
			return fmt.Errorf("bind env var %s to key %s: %w", envVar, key, err)
		}
	}

	return nil
}

func NewEnvBinder(binders map[string]string) *EnvBinder {
	return &EnvBinder{
		binders: binders,
	}
}

func NewDefaultEnvBinder() *EnvBinder {
	return NewEnvBinder(map[string]string{
		"AIRTABLE_PAT":     "airtable.token",
		"AIRTABLE_BASE_ID": "airtable.base_id",
		"PORT":             "server.port",
	})
}
