package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/closer/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g.
// CLOSER_LOG_LEVEL or CLOSER_PIPELINE_TARGET.
const EnvPrefix = "CLOSER"

// Options tunes where Load looks.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// EnvFiles are loaded into the process environment before reading
	// CLOSER_* variables. Missing files are skipped. Defaults to ".env".
	EnvFiles []string

	// DBPath comes from the --db flag and beats every other source.
	DBPath string
}

// Load builds a validated Config.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, "", reflect.ValueOf(Default()))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := resolveDatabase(&cfg.Database, opts.DBPath); err != nil {
		return nil, err
	}
	cfg.LLM = cfg.LLM.WithModelOverride()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func loadEnvFiles(files []string) error {
	if files == nil {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	// godotenv.Load never overrides variables already set.
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("closer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "closer"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// resolveDatabase picks the sqlite file: --db, then database.dsn, then
// CLOSER_DB and the XDG data directory.
func resolveDatabase(db *DatabaseConfig, flagPath string) error {
	if flagPath != "" {
		db.DSN = flagPath
	}
	if db.Driver != string(store.DriverSQLite) {
		return nil
	}
	if db.DSN != "" {
		return store.EnsureDir(db.DSN)
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	db.DSN = p
	return nil
}

// setDefaults registers every leaf of def under its mapstructure key so
// AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, prefix string, def reflect.Value) {
	t := def.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		key := f.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		fv := def.Field(i)
		if fv.Kind() == reflect.Struct {
			setDefaults(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}
