package ledger

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/villainfoods/orderledger/internal/storage"
)

// Store errors.
var (
	// ErrDuplicateIndex is returned when a block's index is already occupied.
	// A concurrent appender lost the race and must retry with a fresh tip.
	ErrDuplicateIndex = errors.New("block index already exists")

	// ErrNotFound is returned when a block or order lookup has no record.
	ErrNotFound = errors.New("not found")
)

// Key prefixes and state keys for the ledger store.
var (
	prefixBlock = []byte("b/") // b/<index(8)> -> block JSON
	prefixOrder = []byte("o/") // o/<order_id(8)> -> index(8)
	keyLength   = []byte("s/length")
)

// Store persists ledger blocks to a storage.DB. It is the single source of
// truth on reload: verification always re-reads from here, never from a cache.
type Store struct {
	db storage.DB
}

// NewStore creates a ledger store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// Append persists a block atomically: block record, order-id index, and chain
// length commit together, so a concurrent reader never observes a partially
// written block. Returns ErrDuplicateIndex if the index is already occupied.
func (s *Store) Append(blk *Block) error {
	exists, err := s.db.Has(blockKey(blk.Index))
	if err != nil {
		return fmt.Errorf("index check: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: index %d", ErrDuplicateIndex, blk.Index)
	}

	length, err := s.Length()
	if err != nil {
		return err
	}
	if blk.Index != length {
		return fmt.Errorf("append is tail-only: index %d, chain length %d", blk.Index, length)
	}

	data, err := json.Marshal(blk)
	if err != nil {
		return fmt.Errorf("block marshal: %w", err)
	}

	batch := storage.NewBatch(s.db)
	if err := batch.Put(blockKey(blk.Index), data); err != nil {
		return fmt.Errorf("block put: %w", err)
	}

	// Genesis carries no order; everything else is indexed by order id.
	if blk.Payload.OrderID != 0 {
		var idx [8]byte
		binary.BigEndian.PutUint64(idx[:], blk.Index)
		if err := batch.Put(orderKey(blk.Payload.OrderID), idx[:]); err != nil {
			return fmt.Errorf("order index put: %w", err)
		}
	}

	var lengthBuf [8]byte
	binary.BigEndian.PutUint64(lengthBuf[:], blk.Index+1)
	if err := batch.Put(keyLength, lengthBuf[:]); err != nil {
		return fmt.Errorf("length put: %w", err)
	}

	if err := batch.Commit(); err != nil {
		return fmt.Errorf("append commit: %w", err)
	}
	return nil
}

// GetByIndex retrieves a block by its index.
func (s *Store) GetByIndex(index uint64) (*Block, error) {
	data, err := s.db.Get(blockKey(index))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: block %d", ErrNotFound, index)
	}
	if err != nil {
		return nil, fmt.Errorf("block read: %w", err)
	}
	var blk Block
	if err := json.Unmarshal(data, &blk); err != nil {
		return nil, fmt.Errorf("block unmarshal: %w", err)
	}
	return &blk, nil
}

// FindByOrderID retrieves the block recording the given order.
// Returns ErrNotFound when the order has no ledger entry yet.
func (s *Store) FindByOrderID(orderID uint64) (*Block, error) {
	data, err := s.db.Get(orderKey(orderID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("order index read: %w", err)
	}
	if len(data) != 8 {
		return nil, fmt.Errorf("corrupt order index: got %d bytes, want 8", len(data))
	}
	return s.GetByIndex(binary.BigEndian.Uint64(data))
}

// Length returns the chain length (0 for an uninitialized ledger). Only a
// confirmed-absent length key means empty; a failing store surfaces as an
// error so callers cannot mistake an unreadable ledger for an empty one.
func (s *Store) Length() (uint64, error) {
	data, err := s.db.Get(keyLength)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil // No blocks yet.
	}
	if err != nil {
		return 0, fmt.Errorf("length read: %w", err)
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("corrupt length record: got %d bytes, want 8", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// Tip returns the last block of the chain, or ErrNotFound for an empty ledger.
func (s *Store) Tip() (*Block, error) {
	length, err := s.Length()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, fmt.Errorf("%w: ledger is empty", ErrNotFound)
	}
	return s.GetByIndex(length - 1)
}

// LoadAll returns the full chain in index order. An uninitialized ledger
// yields an empty slice.
func (s *Store) LoadAll() ([]*Block, error) {
	length, err := s.Length()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		// A missing length key with blocks on disk is corruption, not an
		// empty ledger.
		exists, err := s.db.Has(blockKey(0))
		if err != nil {
			return nil, fmt.Errorf("genesis check: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("corrupt length record: blocks exist but length is unset")
		}
	}
	blocks := make([]*Block, 0, length)
	for i := uint64(0); i < length; i++ {
		blk, err := s.GetByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("load block %d: %w", i, err)
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

func blockKey(index uint64) []byte {
	key := make([]byte, len(prefixBlock)+8)
	copy(key, prefixBlock)
	binary.BigEndian.PutUint64(key[len(prefixBlock):], index)
	return key
}

func orderKey(orderID uint64) []byte {
	key := make([]byte, len(prefixOrder)+8)
	copy(key, prefixOrder)
	binary.BigEndian.PutUint64(key[len(prefixOrder):], orderID)
	return key
}
