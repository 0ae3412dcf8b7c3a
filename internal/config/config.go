package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zhouzirui/mindful/client/internal/service/assessment"
	"github.com/zhouzirui/mindful/client/internal/storage"
)

const defaultConfigPath = "configs/config.yaml"

// Config 聚合客户端宿主进程的配置项。
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Backend    BackendConfig    `yaml:"backend"`
	Storage    StorageConfig    `yaml:"storage"`
	Assessment AssessmentConfig `yaml:"assessment"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig 描述本地 HTTP 服务配置。
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// BackendConfig 描述远端认证与会话后端。
type BackendConfig struct {
	BaseURL   string `yaml:"baseUrl"`
	SocketURL string `yaml:"socketUrl"`
}

// StorageConfig 选择本地持久化驱动。
type StorageConfig struct {
	Driver     string `yaml:"driver"`
	Path       string `yaml:"path"`
	ValkeyAddr string `yaml:"valkeyAddr"`
	Prefix     string `yaml:"prefix"`
}

// Options converts the section into storage driver options.
func (c StorageConfig) Options() storage.Options {
	return storage.Options{Driver: c.Driver, Path: c.Path, ValkeyAddr: c.ValkeyAddr, Prefix: c.Prefix}
}

// AssessmentConfig 保存规则表阈值。
type AssessmentConfig struct {
	Thresholds assessment.Thresholds `yaml:"thresholds"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load 依次应用默认值、YAML 文件与环境变量，然后校验。
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	for name, raw := range map[string]string{"backend base url": c.Backend.BaseURL, "backend socket url": c.Backend.SocketURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s %q is not an absolute url", name, raw))
		}
	}
	switch strings.ToLower(c.Storage.Driver) {
	case "file":
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage path is required for the file driver"))
		}
	case "memory":
	case "valkey":
		if c.Storage.ValkeyAddr == "" {
			errs = append(errs, errors.New("valkey address is required for the valkey driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Backend: BackendConfig{
			BaseURL:   "https://api.malaysiabdmartshop.com",
			SocketURL: "wss://api.malaysiabdmartshop.com/ws",
		},
		Storage: StorageConfig{
			Driver: "file",
			Path:   "data/storage.json",
			Prefix: "mindful",
		},
		Assessment: AssessmentConfig{Thresholds: assessment.DefaultThresholds()},
		Log:        LogConfig{Level: "info"},
	}
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if raw, ok := os.LookupEnv("PORT"); ok {
		addr, err := parseAddr(raw)
		if err != nil {
			return err
		}
		cfg.Server.Addr = addr
	}

	cfg.Backend.BaseURL = getEnvOrDefault("BACKEND_BASE_URL", cfg.Backend.BaseURL)
	cfg.Backend.SocketURL = getEnvOrDefault("BACKEND_SOCKET_URL", cfg.Backend.SocketURL)
	cfg.Storage.Driver = getEnvOrDefault("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Path = getEnvOrDefault("STORAGE_PATH", cfg.Storage.Path)
	cfg.Storage.ValkeyAddr = getEnvOrDefault("STORAGE_VALKEY_ADDR", cfg.Storage.ValkeyAddr)
	cfg.Storage.Prefix = getEnvOrDefault("STORAGE_PREFIX", cfg.Storage.Prefix)
	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)

	th := &cfg.Assessment.Thresholds
	for key, field := range map[string]*int{
		"ASSESSMENT_THRESHOLD_STRESS":      &th.StressManagement,
		"ASSESSMENT_THRESHOLD_EMOTIONAL":   &th.EmotionalWellbeing,
		"ASSESSMENT_THRESHOLD_SLEEP":       &th.Sleep,
		"ASSESSMENT_THRESHOLD_COPING":      &th.CopingStrategies,
		"ASSESSMENT_THRESHOLD_BALANCE":     &th.LifeBalance,
		"ASSESSMENT_THRESHOLD_MINDFULNESS": &th.Mindfulness,
		"ASSESSMENT_THRESHOLD_ENERGY":      &th.Energy,
		"ASSESSMENT_THRESHOLD_EXPRESSION":  &th.EmotionalExpression,
	} {
		val, err := parseOptionalIntEnv(key)
		if err != nil {
			return err
		}
		if val != nil {
			*field = *val
		}
	}
	return nil
}

// parseAddr 允许 "8080"、":8080" 或 "127.0.0.1:8080"。
func parseAddr(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return ":8080", nil
	}
	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	return ":" + port, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
