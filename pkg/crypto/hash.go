// Package crypto provides cryptographic primitives for the order ledger.
package crypto

import (
	"github.com/villainfoods/orderledger/pkg/types"
	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}
