// Package config 提供配置管理
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
	"github.com/dienstplan/dienstplan/pkg/scheduler/solver"
)

// Config 应用配置
type Config struct {
	App    AppConfig     `json:"app"`
	Solver solver.Config `json:"solver"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `json:"name"`
	Env      string `json:"env"`
	LogLevel string `json:"log_level"`
}

// Load 从环境变量加载配置
// 返回的配置是不可变的：每次求解传入副本，不依赖进程级全局状态
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "dienstplan"),
			Env:      getEnv("APP_ENV", "development"),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
		},
		Solver: solver.Config{
			TimeBudget: getEnvDuration("SOLVER_TIME_BUDGET", 30*time.Second),
			RandomSeed: getEnvInt("SOLVER_RANDOM_SEED", 1),
			Constraints: constraint.Options{
				MinRestHours:   getEnvInt("SOLVER_MIN_REST_HOURS", 11),
				EnableMinHours: getEnvBool("SOLVER_ENABLE_MIN_HOURS", false),
				EnableFairness: getEnvBool("SOLVER_ENABLE_FAIRNESS", true),
				Weights: constraint.Weights{
					RestTime:        getEnvInt("SOLVER_WEIGHT_REST_TIME", constraint.DefaultWeightRestTime),
					ConsecutiveDays: getEnvInt("SOLVER_WEIGHT_CONSECUTIVE_DAYS", constraint.DefaultWeightConsecutiveDays),
					MinHours:        getEnvInt("SOLVER_WEIGHT_MIN_HOURS", constraint.DefaultWeightMinHours),
					Fairness:        getEnvInt("SOLVER_WEIGHT_FAIRNESS", constraint.DefaultWeightFairness),
				},
			},
		},
	}

	if err := cfg.Solver.Constraints.Weights.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
