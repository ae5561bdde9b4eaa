// Package ledger implements the tamper-evident order ledger: an append-only
// hash chain of delivered orders with proof-of-work and integrity verification.
package ledger

import (
	"encoding/binary"

	"github.com/villainfoods/orderledger/pkg/crypto"
	"github.com/villainfoods/orderledger/pkg/order"
	"github.com/villainfoods/orderledger/pkg/types"
)

// Block is one ledger entry: an order snapshot plus chain-linkage metadata.
// The genesis block has index 0 and an all-zero PrevHash sentinel.
type Block struct {
	Index     uint64        `json:"index"`
	Timestamp uint64        `json:"timestamp"`
	Payload   order.Payload `json:"payload"`
	PrevHash  types.Hash    `json:"prev_hash"`
	Nonce     uint64        `json:"nonce"`
	Hash      types.Hash    `json:"hash"`
}

// HashingBytes returns the canonical bytes the block hash is computed over.
// Format: index(8 LE) | timestamp(8 LE) | prev_hash(32) | nonce(8 LE) | payload canonical bytes.
// The stored Hash field is excluded; it is the digest of these bytes.
func (b *Block) HashingBytes() []byte {
	payload := b.Payload.CanonicalBytes()
	buf := make([]byte, 0, 56+len(payload))
	buf = binary.LittleEndian.AppendUint64(buf, b.Index)
	buf = binary.LittleEndian.AppendUint64(buf, b.Timestamp)
	buf = append(buf, b.PrevHash[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, b.Nonce)
	buf = append(buf, payload...)
	return buf
}

// ComputeHash returns the digest over the block's hashing bytes.
func (b *Block) ComputeHash() types.Hash {
	return crypto.Hash(b.HashingBytes())
}

// MeetsDifficulty reports whether the hash has at least the required number
// of leading zero hex digits.
func MeetsDifficulty(h types.Hash, difficulty int) bool {
	return h.LeadingZeroHexDigits() >= difficulty
}
