package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const (
	defaultLogLevel      = "info"
	defaultEnv           = EnvLocal
	defaultConfigDir     = ".keep"
	defaultMasterKeyFile = "master.key"
	defaultDataFile      = "keep.db"
	defaultConfigFile    = "config.yaml"
	defaultStoreDriver   = DriverSQLite
	defaultStoreService  = "keep"
	defaultStoreKey      = "keep-items"
	defaultKeyAlgorithm  = "argon2id"
	defaultSessionTTL    = 15 * time.Minute
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	LogLevel      string        `mapstructure:"log_level"`
	ConfigDir     string        `mapstructure:"config_dir"`
	MasterKeyPath string        `mapstructure:"master_key_path"`
	KeyAlgorithm  string        `mapstructure:"key_algorithm"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	Store         StoreConfig   `mapstructure:",squash"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"store_driver"`
	DataPath    string `mapstructure:"data_path"`
	DatabaseURI string `mapstructure:"database_uri"`
	Service     string `mapstructure:"store_service"`
	Key         string `mapstructure:"store_key"`
}

// MustLoad загружает конфигурацию и паникует при ошибке
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load собирает конфигурацию из .env, переменных окружения и YAML-файла.
// Пустой configFile означает <config_dir>/config.yaml, если он есть.
func Load(configFile string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("config_dir", defaultConfigDir)
	v.SetDefault("master_key_path", "")
	v.SetDefault("key_algorithm", defaultKeyAlgorithm)
	v.SetDefault("session_ttl", defaultSessionTTL)
	v.SetDefault("store_driver", defaultStoreDriver)
	v.SetDefault("data_path", "")
	v.SetDefault("database_uri", "")
	v.SetDefault("store_service", defaultStoreService)
	v.SetDefault("store_key", defaultStoreKey)

	configDir := resolveConfigDir(v.GetString("config_dir"))

	if configFile == "" {
		candidate := filepath.Join(configDir, defaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		// каталог мог быть переопределен в файле
		configDir = resolveConfigDir(v.GetString("config_dir"))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	cfg.ConfigDir = configDir

	if cfg.MasterKeyPath == "" {
		cfg.MasterKeyPath = filepath.Join(configDir, defaultMasterKeyFile)
	}
	if cfg.Store.DataPath == "" {
		cfg.Store.DataPath = filepath.Join(configDir, defaultDataFile)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureDirs создает каталоги для ключа и данных.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.ConfigDir, filepath.Dir(c.MasterKeyPath), filepath.Dir(c.Store.DataPath)} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
		}
	}
	return nil
}

func loadDotEnv() {
	// Определяем путь к .env файлу (относительно места запуска)
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

func resolveConfigDir(dir string) string {
	if dir != defaultConfigDir {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, dir)
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("неизвестное окружение app_env: %q", c.Env)
	}
	if c.MasterKeyPath == "" {
		return errors.New("master_key_path не может быть пустым")
	}
	switch c.KeyAlgorithm {
	case "argon2id", "pbkdf2":
	default:
		return fmt.Errorf("неизвестный алгоритм key_algorithm: %q", c.KeyAlgorithm)
	}
	switch c.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Store.DatabaseURI == "" {
			return errors.New("database_uri обязателен для драйвера postgres")
		}
	default:
		return fmt.Errorf("неизвестный драйвер store_driver: %q", c.Store.Driver)
	}
	if c.Store.Key == "" {
		return errors.New("store_key не может быть пустым")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
