package crypto

import (
	"testing"

	"github.com/villainfoods/orderledger/pkg/types"
)

func TestHash_Deterministic(t *testing.T) {
	data := []byte("order ledger test data")
	h1 := Hash(data)
	h2 := Hash(data)
	if h1 != h2 {
		t.Error("Hash() should be deterministic")
	}
}

func TestHash_DifferentInputs(t *testing.T) {
	h1 := Hash([]byte("input a"))
	h2 := Hash([]byte("input b"))
	if h1 == h2 {
		t.Error("different inputs should produce different hashes")
	}
}

func TestHash_SingleBitChange(t *testing.T) {
	a := []byte{0x00, 0x01, 0x02, 0x03}
	b := []byte{0x00, 0x01, 0x02, 0x02}
	if Hash(a) == Hash(b) {
		t.Error("single-bit change should change the hash")
	}
}

func TestHash_Empty(t *testing.T) {
	h := Hash(nil)
	if h.IsZero() {
		t.Error("hash of empty input should not be the zero hash")
	}
	if len(h) != types.HashSize {
		t.Errorf("hash length = %d, want %d", len(h), types.HashSize)
	}
}
