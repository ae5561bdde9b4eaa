package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Miner errors.
var (
	ErrZeroDifficulty = errors.New("difficulty must be > 0")
	ErrBadDifficulty  = errors.New("difficulty out of range")
)

// MaxDifficulty is the largest meaningful difficulty: a 256-bit hash has
// 64 hex digits.
const MaxDifficulty = 64

// Miner searches for a nonce whose block digest has the required number of
// leading zero hex digits. Difficulty here is demonstrative tamper-evidence,
// not spam resistance, so it stays low and the search is single-threaded.
type Miner struct {
	Difficulty int
}

// NewMiner creates a miner for the given difficulty.
func NewMiner(difficulty int) (*Miner, error) {
	if difficulty <= 0 {
		return nil, ErrZeroDifficulty
	}
	if difficulty > MaxDifficulty {
		return nil, fmt.Errorf("%w: %d > %d", ErrBadDifficulty, difficulty, MaxDifficulty)
	}
	return &Miner{Difficulty: difficulty}, nil
}

// Mine iterates the nonce from 0 until the block digest meets the difficulty,
// then sets the block's Nonce and Hash. When the context is cancelled, mining
// stops and ctx.Err() is returned.
func (m *Miner) Mine(ctx context.Context, blk *Block) error {
	if blk == nil {
		return fmt.Errorf("nil block")
	}

	for nonce := uint64(0); ; nonce++ {
		// Check cancellation every 8192 iterations.
		if nonce&0x1FFF == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		blk.Nonce = nonce
		hash := blk.ComputeHash()
		if MeetsDifficulty(hash, m.Difficulty) {
			blk.Hash = hash
			return nil
		}
		if nonce == ^uint64(0) {
			return fmt.Errorf("nonce space exhausted")
		}
	}
}
