package rpc

import (
	"github.com/villainfoods/orderledger/internal/ledger"
	"github.com/villainfoods/orderledger/pkg/order"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32000
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Param types ─────────────────────────────────────────────────────────

// IndexParam is used by endpoints that take a block index.
type IndexParam struct {
	Index uint64 `json:"index"`
}

// OrderIDParam is used by endpoints that take an order ID.
type OrderIDParam struct {
	OrderID uint64 `json:"order_id"`
}

// RecordDeliveryParam is used by order_recordDelivery. Monetary amounts are
// integer cents.
type RecordDeliveryParam struct {
	OrderID        uint64           `json:"order_id"`
	CustomerID     uint64           `json:"customer_id"`
	CustomerName   string           `json:"customer_name"`
	RestaurantID   uint64           `json:"restaurant_id"`
	RestaurantName string           `json:"restaurant_name"`
	Items          []order.LineItem `json:"items"`
	TotalCents     uint64           `json:"total_cents"`
	PaymentMethod  string           `json:"payment_method"`
	DeliveryAddr   string           `json:"delivery_address"`
	Memo           string           `json:"memo,omitempty"`
}

// Payload converts the param into a canonical order payload.
func (p *RecordDeliveryParam) Payload() order.Payload {
	return order.Payload{
		SchemaVersion:  order.SchemaVersion,
		OrderID:        p.OrderID,
		CustomerID:     p.CustomerID,
		CustomerName:   p.CustomerName,
		RestaurantID:   p.RestaurantID,
		RestaurantName: p.RestaurantName,
		Items:          p.Items,
		TotalCents:     p.TotalCents,
		PaymentMethod:  p.PaymentMethod,
		DeliveryAddr:   p.DeliveryAddr,
		Memo:           p.Memo,
	}
}

// ── Result types ────────────────────────────────────────────────────────

// LedgerInfoResult is returned by ledger_getInfo.
type LedgerInfoResult struct {
	ChainLength uint64 `json:"chain_length"`
	TipIndex    uint64 `json:"tip_index"`
	TipHash     string `json:"tip_hash"`
	Difficulty  int    `json:"difficulty"`
}

// BlockResult wraps a ledger block for RPC responses.
type BlockResult struct {
	Index     uint64        `json:"index"`
	Timestamp uint64        `json:"timestamp"`
	Payload   order.Payload `json:"payload"`
	PrevHash  string        `json:"prev_hash"`
	Nonce     uint64        `json:"nonce"`
	Hash      string        `json:"hash"`
}

// NewBlockResult creates a BlockResult from a ledger block.
func NewBlockResult(b *ledger.Block) *BlockResult {
	return &BlockResult{
		Index:     b.Index,
		Timestamp: b.Timestamp,
		Payload:   b.Payload,
		PrevHash:  b.PrevHash.String(),
		Nonce:     b.Nonce,
		Hash:      b.Hash.String(),
	}
}

// EntryResult is returned by ledger_getEntry. Recorded is false when no
// ledger entry exists for the order, in which case Block is nil.
type EntryResult struct {
	Recorded bool         `json:"recorded"`
	Block    *BlockResult `json:"block,omitempty"`
}

// RecordDeliveryResult is returned by order_recordDelivery. A failed append
// is reported with Recorded=false rather than an RPC error: a ledger write
// failure must not fail the delivery flow that triggered it.
type RecordDeliveryResult struct {
	Recorded bool   `json:"recorded"`
	Index    uint64 `json:"index,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Error    string `json:"error,omitempty"`
}

// VerifyResult is returned by ledger_verify.
type VerifyResult struct {
	Valid         bool          `json:"valid"`
	FailedIndex   *uint64       `json:"failed_index,omitempty"`
	FailedOrderID uint64        `json:"failed_order_id,omitempty"`
	Reason        ledger.Reason `json:"reason,omitempty"`
	Message       string        `json:"message"`
	ChainLength   uint64        `json:"chain_length"`
}

// NewVerifyResult creates a VerifyResult from an integrity scan outcome.
func NewVerifyResult(r *ledger.VerificationResult) *VerifyResult {
	return &VerifyResult{
		Valid:         r.Valid,
		FailedIndex:   r.FailedIndex,
		FailedOrderID: r.FailedOrderID,
		Reason:        r.Reason,
		Message:       r.Message,
		ChainLength:   r.ChainLength,
	}
}
