/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/swiss"
)

type Config struct {
	StoreDir     string
	S3Bucket     string
	TotalRounds  int
	LogLevel     string
	HttpCacheTTL time.Duration

	DiscordToken     string
	DiscordPublicKey string
	DiscordAppID     string
	ListenAddr       string
}

// Load reads an optional .env file and then the process environment. A
// missing .env file is not an error.
func Load(logger zerolog.Logger, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		StoreDir:         getEnv("SWISS_STORE_DIR", defaultStoreDir()),
		S3Bucket:         getEnv("SWISS_S3_BUCKET", ""),
		LogLevel:         getEnv("SWISS_LOG_LEVEL", "info"),
		DiscordToken:     getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordPublicKey: getEnv("DISCORD_PUBLIC_KEY", ""),
		DiscordAppID:     getEnv("DISCORD_APP_ID", ""),
		ListenAddr:       getEnv("SWISS_LISTEN_ADDR", ":8080"),
	}

	var err error
	cfg.TotalRounds, err = strconv.Atoi(getEnv("SWISS_TOTAL_ROUNDS",
		strconv.Itoa(swiss.DefaultTotalRounds)))
	if err != nil || cfg.TotalRounds <= 0 {
		return nil, fmt.Errorf("SWISS_TOTAL_ROUNDS must be a positive integer: %q",
			os.Getenv("SWISS_TOTAL_ROUNDS"))
	}
	cfg.HttpCacheTTL, err = time.ParseDuration(getEnv("SWISS_HTTP_CACHE_TTL",
		"1h"))
	if err != nil {
		return nil, fmt.Errorf("SWISS_HTTP_CACHE_TTL: %w", err)
	}

	logger.Debug().
		Str("store_dir", cfg.StoreDir).
		Str("s3_bucket", cfg.S3Bucket).
		Int("total_rounds", cfg.TotalRounds).
		Str("log_level", cfg.LogLevel).
		Dur("http_cache_ttl", cfg.HttpCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

// RequireDiscord reports an error unless the discord bot credentials are set.
func (cfg *Config) RequireDiscord() error {
	if cfg.DiscordToken == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.DiscordPublicKey == "" {
		return fmt.Errorf("DISCORD_PUBLIC_KEY is required")
	}
	if cfg.DiscordAppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}

func defaultStoreDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".bcc-swiss"
	}
	return dir + string(os.PathSeparator) + "bcc-swiss"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
