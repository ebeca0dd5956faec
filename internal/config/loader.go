package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// decimalDecodeHook lets mapstructure populate decimal.Decimal fields from
// the strings and numbers a YAML/env config naturally produces.
func decimalDecodeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}

	switch from.Kind() {
	case reflect.String:
		return decimal.NewFromString(data.(string))
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(reflect.ValueOf(data).Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(reflect.ValueOf(data).Int()), nil
	default:
		return data, nil
	}
}

var _ mapstructure.DecodeHookFunc = decimalDecodeHook

// Loader reads the chain/node/repo/channel/threshold snapshot from a config
// file and from environment variables (RABBIT_IP, REDIS_*,
// UNIQUE_ALERTER_IDENTIFIER, LOGGING_LEVEL, *_LOG_FILE_TEMPLATE), mirroring
// the teacher's cmd/tradingbot/main.go viper setup.
type Loader struct {
	v *viper.Viper
}

// NewLoader builds a Loader rooted at configPath, binding the environment
// variables the alerter CLI reads at startup.
func NewLoader(configPath string) *Loader {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	_ = v.BindEnv("bus.url", "RABBIT_IP")
	_ = v.BindEnv("kvstore.addr", "REDIS_ADDR")
	_ = v.BindEnv("kvstore.password", "REDIS_PASSWORD")
	_ = v.BindEnv("kvstore.db", "REDIS_DB")
	_ = v.BindEnv("identifier", "UNIQUE_ALERTER_IDENTIFIER")
	_ = v.BindEnv("logging.level", "LOGGING_LEVEL")
	_ = v.BindEnv("logging.file_template", "ALERTER_LOG_FILE_TEMPLATE")

	return &Loader{v: v}
}

// Load reads the config file into a Snapshot. A missing file is not an
// error the first time a process starts with pure env-var config; callers
// that require a file should check the returned error explicitly.
func (l *Loader) Load() (Snapshot, error) {
	var snap Snapshot
	if err := l.v.ReadInConfig(); err != nil {
		return snap, fmt.Errorf("config: read config file: %w", err)
	}
	if err := l.v.Unmarshal(&snap, viper.DecodeHook(decimalDecodeHook)); err != nil {
		return snap, fmt.Errorf("config: unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// BusURL returns the configured bus endpoint (bound from RABBIT_IP, kept
// under its historical name since operator tooling and dashboards already
// reference it, even though the transport behind it is NATS).
func (l *Loader) BusURL() string {
	return l.v.GetString("bus.url")
}

// Identifier returns the unique identifier this alerter process reports
// under (UNIQUE_ALERTER_IDENTIFIER).
func (l *Loader) Identifier() string {
	return l.v.GetString("identifier")
}

// LoggingLevel returns the configured zap logging level name.
func (l *Loader) LoggingLevel() string {
	level := l.v.GetString("logging.level")
	if level == "" {
		return "info"
	}
	return level
}

// KVStoreAddr returns the configured Redis address (REDIS_ADDR).
func (l *Loader) KVStoreAddr() string {
	return l.v.GetString("kvstore.addr")
}

// ConfigFile exposes the path backing this loader, so a Watcher can
// subscribe to it.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}
