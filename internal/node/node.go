// Package node provides a reusable order ledger node that can be embedded
// in any binary.
package node

import (
	"context"
	"fmt"
	"os"

	"github.com/villainfoods/orderledger/config"
	"github.com/villainfoods/orderledger/internal/ledger"
	klog "github.com/villainfoods/orderledger/internal/log"
	"github.com/villainfoods/orderledger/internal/rpc"
	"github.com/villainfoods/orderledger/internal/storage"
	"github.com/rs/zerolog"
)

// Node is a fully-initialized order ledger node.
type Node struct {
	cfg    *config.Config
	logger zerolog.Logger

	// Core
	db     storage.DB
	engine *ledger.Engine

	// RPC
	rpcServer *rpc.Server
}

// New creates and initializes a new Node: logger, storage, ledger engine,
// genesis, and RPC server. The RPC listener is bound before New returns.
func New(cfg *config.Config) (*Node, error) {
	// ── 1. Init logger ──────────────────────────────────────────────
	logFile := cfg.Log.File
	if logFile == "" {
		logsDir := cfg.LogsDir()
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
		logFile = logsDir + "/orderledger.log"
	}
	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger := klog.WithComponent("node")

	logger.Info().
		Int("difficulty", cfg.Ledger.Difficulty).
		Msg("Starting Order Ledger Node")

	// ── 2. Open storage ─────────────────────────────────────────────
	db, err := storage.NewBadger(cfg.LedgerDir())
	if err != nil {
		return nil, fmt.Errorf("open database at %s: %w", cfg.LedgerDir(), err)
	}
	logger.Info().Str("path", cfg.LedgerDir()).Msg("Database opened")

	// ── 3. Ledger engine ────────────────────────────────────────────
	engine, err := ledger.NewEngine(ledger.NewStore(db), cfg.Ledger.Difficulty)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger engine: %w", err)
	}

	if err := engine.EnsureGenesis(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure genesis: %w", err)
	}

	length, err := engine.Store().Length()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read chain length: %w", err)
	}
	logger.Info().Uint64("length", length).Msg("Ledger ready")

	// ── 4. Startup integrity check ──────────────────────────────────
	result, err := engine.VerifyIntegrity()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("startup verification: %w", err)
	}
	if !result.Valid {
		logger.Error().
			Uint64("failed_index", *result.FailedIndex).
			Str("reason", string(result.Reason)).
			Msg("Ledger integrity check FAILED; continuing read-only inspection is advised")
	} else {
		logger.Info().Uint64("length", result.ChainLength).Msg("Ledger integrity verified")
	}

	// ── 5. RPC server ───────────────────────────────────────────────
	var rpcServer *rpc.Server
	if cfg.RPC.Enabled {
		rpcAddr := fmt.Sprintf("%s:%d", cfg.RPC.Addr, cfg.RPC.Port)
		rpcServer = rpc.New(rpcAddr, engine, cfg.RPC)
		if err := rpcServer.Start(); err != nil {
			db.Close()
			return nil, fmt.Errorf("start RPC at %s: %w", rpcAddr, err)
		}
		logger.Info().Str("addr", rpcServer.Addr()).Msg("RPC server started")
	} else {
		logger.Warn().Msg("RPC disabled by config")
	}

	return &Node{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		engine:    engine,
		rpcServer: rpcServer,
	}, nil
}

// Stop performs graceful shutdown in reverse order.
func (n *Node) Stop() {
	if n.rpcServer != nil {
		n.rpcServer.Stop()
	}
	if n.db != nil {
		n.db.Close()
	}

	n.logger.Info().Msg("Goodbye!")
}

// Engine returns the ledger engine.
func (n *Node) Engine() *ledger.Engine {
	return n.engine
}

// RPCAddr returns the address the RPC server is listening on.
func (n *Node) RPCAddr() string {
	if n.rpcServer == nil {
		return ""
	}
	return n.rpcServer.Addr()
}
