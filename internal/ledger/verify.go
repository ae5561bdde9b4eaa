package ledger

import "fmt"

// Reason identifies which integrity check a block failed.
type Reason string

// Verification failure reasons.
const (
	// ReasonHashMismatch: the stored hash does not match a freshly recomputed
	// digest over the block's fields. Catches in-place field tampering.
	ReasonHashMismatch Reason = "hash mismatch"

	// ReasonLinkMismatch: prev_hash does not equal the previous block's hash.
	// Catches chain splicing and reordering.
	ReasonLinkMismatch Reason = "previous hash mismatch"

	// ReasonInsufficientWork: the hash does not satisfy the difficulty
	// predicate. Catches forged blocks that skipped mining.
	ReasonInsufficientWork Reason = "missing proof of work"

	// ReasonBadGenesis: the genesis block's prev_hash is not the zero sentinel.
	ReasonBadGenesis Reason = "genesis previous hash not zero"
)

// VerificationResult is the outcome of a full-chain integrity scan.
// An invalid chain is a reportable fact about the data, not an error:
// the scan itself succeeded.
type VerificationResult struct {
	Valid         bool    `json:"valid"`
	FailedIndex   *uint64 `json:"failed_index,omitempty"`
	FailedOrderID uint64  `json:"failed_order_id,omitempty"`
	Reason        Reason  `json:"reason,omitempty"`
	Message       string  `json:"message"`
	ChainLength   uint64  `json:"chain_length"`
}

// valid builds the passing result for a chain of the given length.
func validResult(length uint64) *VerificationResult {
	return &VerificationResult{
		Valid:       true,
		Message:     fmt.Sprintf("ledger integrity verified (%d blocks)", length),
		ChainLength: length,
	}
}

// invalid builds the failing result for the first offending block.
// Scanning is fail-fast: one break invalidates trust in everything after it.
func invalidResult(blk *Block, reason Reason, length uint64) *VerificationResult {
	index := blk.Index
	return &VerificationResult{
		Valid:         false,
		FailedIndex:   &index,
		FailedOrderID: blk.Payload.OrderID,
		Reason:        reason,
		Message:       fmt.Sprintf("tampering detected at block %d: %s", index, reason),
		ChainLength:   length,
	}
}
