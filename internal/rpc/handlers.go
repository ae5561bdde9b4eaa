package rpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/villainfoods/orderledger/internal/ledger"
)

// ── Ledger endpoints ────────────────────────────────────────────────────

func (s *Server) handleLedgerGetInfo(req *Request) (interface{}, *Error) {
	length, err := s.engine.Store().Length()
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("read chain length: %v", err)}
	}

	info := &LedgerInfoResult{
		ChainLength: length,
		Difficulty:  s.engine.Difficulty(),
	}
	if length > 0 {
		tip, err := s.engine.Store().Tip()
		if err != nil {
			return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("read tip: %v", err)}
		}
		info.TipIndex = tip.Index
		info.TipHash = tip.Hash.String()
	}
	return info, nil
}

func (s *Server) handleLedgerGetBlockByIndex(req *Request) (interface{}, *Error) {
	var params IndexParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	blk, err := s.engine.Store().GetByIndex(params.Index)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("no block at index %d", params.Index)}
		}
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("read block: %v", err)}
	}
	return NewBlockResult(blk), nil
}

func (s *Server) handleLedgerGetEntry(req *Request) (interface{}, *Error) {
	var params OrderIDParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.OrderID == 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "order_id is required"}
	}

	blk, err := s.engine.Entry(params.OrderID)
	if err != nil {
		// An unrecorded order is a normal answer, not an error.
		if errors.Is(err, ledger.ErrNotFound) {
			return &EntryResult{Recorded: false}, nil
		}
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("lookup entry: %v", err)}
	}
	return &EntryResult{Recorded: true, Block: NewBlockResult(blk)}, nil
}

func (s *Server) handleLedgerVerify(req *Request) (interface{}, *Error) {
	result, err := s.engine.VerifyIntegrity()
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("verify: %v", err)}
	}
	return NewVerifyResult(result), nil
}

// ── Order endpoints ─────────────────────────────────────────────────────

func (s *Server) handleOrderRecordDelivery(ctx context.Context, req *Request) (interface{}, *Error) {
	var params RecordDeliveryParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.OrderID == 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "order_id is required"}
	}

	blk, err := s.engine.AppendOrder(ctx, params.Payload())
	if err != nil {
		s.logger.Error().Err(err).Uint64("order_id", params.OrderID).Msg("Failed to record delivery")
		return &RecordDeliveryResult{Recorded: false, Error: err.Error()}, nil
	}

	return &RecordDeliveryResult{
		Recorded: true,
		Index:    blk.Index,
		Hash:     blk.Hash.String(),
	}, nil
}
