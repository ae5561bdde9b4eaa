package rpcclient

import (
	"context"
	"testing"

	"github.com/villainfoods/orderledger/internal/ledger"
	klog "github.com/villainfoods/orderledger/internal/log"
	"github.com/villainfoods/orderledger/internal/rpc"
	"github.com/villainfoods/orderledger/internal/storage"
	"github.com/villainfoods/orderledger/pkg/order"
)

type testEnv struct {
	client *Client
	engine *ledger.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	klog.Init("error", false, "")

	engine, err := ledger.NewEngine(ledger.NewStore(storage.NewMemory()), 2)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}

	// Create and start RPC server on random port.
	srv := rpc.New("127.0.0.1:0", engine)
	if err := srv.Start(); err != nil {
		t.Fatalf("start rpc: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })

	return &testEnv{
		client: New("http://" + srv.Addr() + "/"),
		engine: engine,
	}
}

func TestClient_LedgerInfo(t *testing.T) {
	env := setupTestEnv(t)

	if err := env.engine.EnsureGenesis(context.Background()); err != nil {
		t.Fatal(err)
	}

	info, err := env.client.LedgerInfo()
	if err != nil {
		t.Fatalf("LedgerInfo: %v", err)
	}
	if info.ChainLength != 1 {
		t.Errorf("chain_length = %d, want 1", info.ChainLength)
	}
	if info.TipHash == "" {
		t.Error("tip_hash is empty")
	}
}

func TestClient_RecordAndLookup(t *testing.T) {
	env := setupTestEnv(t)

	result, err := env.client.RecordDelivery(rpc.RecordDeliveryParam{
		OrderID:    42,
		TotalCents: 4599,
		Items: []order.LineItem{
			{Name: "Volcano Wrap", Quantity: 2, PriceCents: 1150},
		},
	})
	if err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if !result.Recorded {
		t.Fatalf("recorded = false, error = %q", result.Error)
	}

	entry, err := env.client.Entry(42)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if !entry.Recorded {
		t.Fatal("entry should be recorded")
	}
	if entry.Block.Index != result.Index {
		t.Errorf("entry index = %d, want %d", entry.Block.Index, result.Index)
	}

	verify, err := env.client.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !verify.Valid {
		t.Errorf("verify = %+v, want valid", verify)
	}
}

func TestClient_BlockByIndex_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.client.BlockByIndex(99)
	if err == nil {
		t.Fatal("expected error for non-existent block")
	}

	rpcErr, ok := err.(*RPCError)
	if !ok {
		t.Fatalf("expected RPCError, got %T: %v", err, err)
	}
	if rpcErr.Code != -32000 {
		t.Errorf("error code = %d, want -32000", rpcErr.Code)
	}
}

func TestClient_Call_InvalidEndpoint(t *testing.T) {
	client := New("http://127.0.0.1:1/") // port 1 — should refuse

	_, err := client.LedgerInfo()
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestClient_Call_MethodNotFound(t *testing.T) {
	env := setupTestEnv(t)

	err := env.client.Call("nonexistent_method", nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}

	rpcErr, ok := err.(*RPCError)
	if !ok {
		t.Fatalf("expected RPCError, got %T: %v", err, err)
	}
	if rpcErr.Code != -32601 {
		t.Errorf("error code = %d, want -32601", rpcErr.Code)
	}
}
