package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Schedule    ScheduleConfig    `toml:"schedule"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// ScheduleConfig рабочие окна и политика слотов
type ScheduleConfig struct {
	Timezone             string         `toml:"timezone"`
	StepMinutes          int            `toml:"step_minutes"`
	MaxConcurrentPerSlot int            `toml:"max_concurrent_per_slot"`
	Windows              []WindowConfig `toml:"windows"`
}

type WindowConfig struct {
	Start string `toml:"start"` // HH:MM
	End   string `toml:"end"`   // HH:MM
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Load читает конфигурацию из TOML файла и заполняет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if len(cfg.Schedule.Windows) == 0 {
		cfg.Schedule.Windows = defaultWindows()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
		Schedule: ScheduleConfig{
			Timezone:             "UTC",
			StepMinutes:          domain.DefaultStepMinutes,
			MaxConcurrentPerSlot: domain.DefaultMaxConcurrentPerSlot,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             5,
		},
	}
}

func defaultWindows() []WindowConfig {
	return []WindowConfig{
		{Start: "07:00", End: "12:00"},
		{Start: "14:00", End: "19:00"},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_minute and burst", ErrInvalidConfig)
	}

	if _, err := c.Schedule.ToDomain(); err != nil {
		return err
	}

	return nil
}

// ToDomain собирает и валидирует расписание
func (s ScheduleConfig) ToDomain() (domain.Schedule, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: schedule.timezone %q: %v", ErrInvalidConfig, s.Timezone, err)
	}

	windows := make([]domain.BusinessWindow, 0, len(s.Windows))
	for i, w := range s.Windows {
		start, err := types.NewTimeStringFromString(w.Start)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: schedule.windows[%d].start: %v", ErrInvalidConfig, i, err)
		}
		end, err := types.NewTimeStringFromString(w.End)
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: schedule.windows[%d].end: %v", ErrInvalidConfig, i, err)
		}
		windows = append(windows, domain.BusinessWindow{Start: start, End: end})
	}

	hours, err := domain.NewBusinessHours(windows, loc)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	schedule := domain.Schedule{
		Hours:                hours,
		StepMinutes:          s.StepMinutes,
		MaxConcurrentPerSlot: s.MaxConcurrentPerSlot,
	}
	if err := schedule.Validate(); err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return schedule, nil
}
