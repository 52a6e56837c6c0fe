package utils

import (
	"log/slog"
	"os"
)

type Config struct {
	port       string
	sqlitePath string

	discordAppToken  string
	discordChannelID string
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		sqlitePath: func() string {
			sqlitePath := os.Getenv("SQLITE_PATH")
			if sqlitePath == "" {
				sqlitePath = "./sqlite.db"
			}
			slog.Debug("env", "SQLITE_PATH", sqlitePath)
			return sqlitePath
		}(),

		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Warn("DISCORD_APP_TOKEN is not set, event announcements disabled")
				return ""
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordChannelID: func() string {
			discordChannelID := os.Getenv("DISCORD_CHANNEL_ID")
			if discordChannelID == "" {
				slog.Warn("DISCORD_CHANNEL_ID is not set, event announcements disabled")
				return ""
			}
			slog.Debug("env", "DISCORD_CHANNEL_ID", discordChannelID)
			return discordChannelID
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get SQLITE_PATH env, default to ./sqlite.db
func (c *Config) GetSqlitePath() string {
	return c.sqlitePath
}

// Get DISCORD_APP_TOKEN env, blank when unset
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CHANNEL_ID env, blank when unset
func (c *Config) GetDiscordChannelID() string {
	return c.discordChannelID
}
