package config

import (
	"fmt"
)

// MaxDifficulty is the highest meaningful proof-of-work difficulty: a
// 32-byte digest has 64 hex digits.
const MaxDifficulty = 64

// Validate checks runtime node config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Ledger.Difficulty < 1 || cfg.Ledger.Difficulty > MaxDifficulty {
		return fmt.Errorf("ledger.difficulty must be in range [1, %d]", MaxDifficulty)
	}
	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}
	return nil
}
