package config

// DefaultDifficulty is the default proof-of-work difficulty in leading zero
// hex digits. Expected mining work at this setting is ~256 hash attempts.
const DefaultDifficulty = 2

// Default returns the default node configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Ledger: LedgerConfig{
			Difficulty: DefaultDifficulty,
		},
		RPC: RPCConfig{
			Enabled:    true,
			Addr:       "127.0.0.1",
			Port:       8640,
			AllowedIPs: []string{"127.0.0.1"},
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
