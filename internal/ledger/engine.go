package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	klog "github.com/villainfoods/orderledger/internal/log"
	"github.com/villainfoods/orderledger/pkg/order"
	"github.com/rs/zerolog"
)

// Engine owns chain construction: genesis creation, appending mined blocks,
// and full-chain verification. Appends are serialized by an internal mutex
// because a new block's prev_hash depends on reading the current tip.
// Verification is read-only and safe to run concurrently with appends.
type Engine struct {
	mu     sync.Mutex // Guards the read-tip, mine, append sequence.
	store  *Store
	miner  *Miner
	logger zerolog.Logger
}

// NewEngine creates an engine over the given store, mining at the given
// difficulty (leading zero hex digits).
func NewEngine(store *Store, difficulty int) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil")
	}
	miner, err := NewMiner(difficulty)
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:  store,
		miner:  miner,
		logger: klog.WithComponent("ledger"),
	}, nil
}

// Difficulty returns the proof-of-work difficulty in leading zero hex digits.
func (e *Engine) Difficulty() int {
	return e.miner.Difficulty
}

// Store returns the underlying ledger store.
func (e *Engine) Store() *Store {
	return e.store
}

// EnsureGenesis creates and appends the genesis block if the ledger is empty.
// Idempotent: a no-op when a chain already exists. The genesis block is mined
// at the same difficulty as every other block so verification is uniform.
func (e *Engine) EnsureGenesis(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureGenesisLocked(ctx)
}

func (e *Engine) ensureGenesisLocked(ctx context.Context) error {
	length, err := e.store.Length()
	if err != nil {
		return fmt.Errorf("genesis check: %w", err)
	}
	if length > 0 {
		return nil
	}

	genesis := &Block{
		Index:     0,
		Timestamp: uint64(time.Now().Unix()),
		Payload:   order.Genesis(),
		// PrevHash stays the zero sentinel.
	}
	if err := e.miner.Mine(ctx, genesis); err != nil {
		return fmt.Errorf("mine genesis: %w", err)
	}
	if err := e.store.Append(genesis); err != nil {
		if errors.Is(err, ErrDuplicateIndex) {
			// Another writer created genesis first; that is fine.
			return nil
		}
		return fmt.Errorf("append genesis: %w", err)
	}

	e.logger.Info().
		Str("hash", genesis.Hash.String()).
		Uint64("nonce", genesis.Nonce).
		Msg("Genesis block created")
	return nil
}

// AppendOrder builds, mines, and persists a block recording the given payload,
// returning the finalized block. Called once per delivered order; the engine
// does not deduplicate by payload, so calling it twice for the same order
// produces two distinct ledger entries (idempotence is the caller's concern).
// A lost ErrDuplicateIndex race against an external writer is retried once
// with a freshly read tip.
func (e *Engine) AppendOrder(ctx context.Context, payload order.Payload) (*Block, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureGenesisLocked(ctx); err != nil {
		return nil, err
	}

	blk, err := e.appendLocked(ctx, payload)
	if errors.Is(err, ErrDuplicateIndex) {
		blk, err = e.appendLocked(ctx, payload)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Uint64("index", blk.Index).
		Uint64("order_id", payload.OrderID).
		Str("hash", blk.Hash.String()).
		Uint64("nonce", blk.Nonce).
		Msg("Order recorded on ledger")
	return blk, nil
}

func (e *Engine) appendLocked(ctx context.Context, payload order.Payload) (*Block, error) {
	tip, err := e.store.Tip()
	if err != nil {
		return nil, fmt.Errorf("read tip: %w", err)
	}

	blk := &Block{
		Index:     tip.Index + 1,
		Timestamp: uint64(time.Now().Unix()),
		Payload:   payload,
		PrevHash:  tip.Hash,
	}
	if err := e.miner.Mine(ctx, blk); err != nil {
		return nil, fmt.Errorf("mine block %d: %w", blk.Index, err)
	}
	if err := e.store.Append(blk); err != nil {
		return nil, err
	}
	return blk, nil
}

// Entry returns the ledger block recording the given order, or ErrNotFound
// when the order has no entry yet.
func (e *Engine) Entry(orderID uint64) (*Block, error) {
	return e.store.FindByOrderID(orderID)
}

// VerifyIntegrity reloads the full chain from the store and walks it from
// index 0, checking each block's recomputed hash, its link to the previous
// block, and its proof-of-work. The scan stops at the first failure. A non-nil
// error means the store itself was unreadable, not that the chain is invalid.
func (e *Engine) VerifyIntegrity() (*VerificationResult, error) {
	blocks, err := e.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load chain: %w", err)
	}
	length := uint64(len(blocks))

	for i, blk := range blocks {
		if blk.ComputeHash() != blk.Hash {
			return invalidResult(blk, ReasonHashMismatch, length), nil
		}
		if i == 0 {
			if !blk.PrevHash.IsZero() {
				return invalidResult(blk, ReasonBadGenesis, length), nil
			}
		} else if blk.PrevHash != blocks[i-1].Hash {
			return invalidResult(blk, ReasonLinkMismatch, length), nil
		}
		if !MeetsDifficulty(blk.Hash, e.miner.Difficulty) {
			return invalidResult(blk, ReasonInsufficientWork, length), nil
		}
	}

	return validResult(length), nil
}
