// Package config handles application configuration.
//
// Configuration is runtime-only: ledger rules (hash layout, block format)
// are fixed in code, while node settings (paths, RPC, difficulty, logging)
// can vary per deployment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config holds runtime configuration for an order ledger node.
type Config struct {
	// Core
	DataDir string `conf:"datadir"`

	// Ledger
	Ledger LedgerConfig

	// RPC server
	RPC RPCConfig

	// Logging
	Log LogConfig
}

// LedgerConfig holds ledger settings.
type LedgerConfig struct {
	// Difficulty is the proof-of-work difficulty in leading zero hex digits.
	// Its purpose is demonstrative tamper-evidence, so it stays low; all
	// blocks in one ledger must be mined at the same difficulty.
	Difficulty int `conf:"ledger.difficulty"`
}

// RPCConfig holds RPC server settings.
type RPCConfig struct {
	Enabled     bool     `conf:"rpc.enabled"`
	Addr        string   `conf:"rpc.addr"`
	Port        int      `conf:"rpc.port"`
	AllowedIPs  []string `conf:"rpc.allowed"`
	CORSOrigins []string `conf:"rpc.cors"` // Allowed CORS origins ("*" = all).
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.orderledger
//	macOS:   ~/Library/Application Support/OrderLedger
//	Windows: %APPDATA%\OrderLedger
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".orderledger"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "OrderLedger")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "OrderLedger")
		}
		return filepath.Join(home, "AppData", "Roaming", "OrderLedger")
	default:
		return filepath.Join(home, ".orderledger")
	}
}

// LedgerDir returns the ledger database directory.
func (c *Config) LedgerDir() string {
	return filepath.Join(c.DataDir, "ledger")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "orderledger.conf")
}
