package order

import (
	"bytes"
	"testing"
)

func samplePayload() Payload {
	return Payload{
		SchemaVersion:  SchemaVersion,
		OrderID:        42,
		CustomerID:     7,
		CustomerName:   "Ada",
		RestaurantID:   3,
		RestaurantName: "Villain Pizza",
		Items: []LineItem{
			{Name: "Margherita", Quantity: 1, PriceCents: 1299},
			{Name: "Garlic bread", Quantity: 2, PriceCents: 450},
		},
		TotalCents:    4599,
		PaymentMethod: "cash",
		DeliveryAddr:  "1 Lair Ave",
	}
}

func TestCanonicalBytes_Deterministic(t *testing.T) {
	p := samplePayload()
	a := p.CanonicalBytes()
	b := p.CanonicalBytes()
	if !bytes.Equal(a, b) {
		t.Error("CanonicalBytes() should be deterministic")
	}
}

func TestCanonicalBytes_FieldSensitivity(t *testing.T) {
	basePayload := samplePayload()
	base := basePayload.CanonicalBytes()

	mutations := []struct {
		name   string
		mutate func(*Payload)
	}{
		{"schema version", func(p *Payload) { p.SchemaVersion = 2 }},
		{"order id", func(p *Payload) { p.OrderID = 43 }},
		{"customer id", func(p *Payload) { p.CustomerID = 8 }},
		{"customer name", func(p *Payload) { p.CustomerName = "Bob" }},
		{"restaurant id", func(p *Payload) { p.RestaurantID = 4 }},
		{"restaurant name", func(p *Payload) { p.RestaurantName = "Other" }},
		{"total", func(p *Payload) { p.TotalCents = 9999 }},
		{"payment method", func(p *Payload) { p.PaymentMethod = "crypto" }},
		{"delivery address", func(p *Payload) { p.DeliveryAddr = "2 Lair Ave" }},
		{"memo", func(p *Payload) { p.Memo = "x" }},
		{"item name", func(p *Payload) { p.Items[0].Name = "Funghi" }},
		{"item quantity", func(p *Payload) { p.Items[0].Quantity = 3 }},
		{"item price", func(p *Payload) { p.Items[0].PriceCents = 1 }},
		{"item removed", func(p *Payload) { p.Items = p.Items[:1] }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePayload()
			tt.mutate(&p)
			if bytes.Equal(base, p.CanonicalBytes()) {
				t.Errorf("mutating %s did not change canonical bytes", tt.name)
			}
		})
	}
}

func TestCanonicalBytes_StringBoundaries(t *testing.T) {
	// Length prefixes must keep adjacent strings from colliding:
	// ("ab", "c") and ("a", "bc") must encode differently.
	a := Payload{SchemaVersion: 1, CustomerName: "ab", RestaurantName: "c"}
	b := Payload{SchemaVersion: 1, CustomerName: "a", RestaurantName: "bc"}
	if bytes.Equal(a.CanonicalBytes(), b.CanonicalBytes()) {
		t.Error("string boundaries are ambiguous in canonical encoding")
	}
}

func TestGenesis(t *testing.T) {
	g := Genesis()
	if g.OrderID != 0 {
		t.Errorf("genesis OrderID = %d, want 0", g.OrderID)
	}
	if g.SchemaVersion != SchemaVersion {
		t.Errorf("genesis SchemaVersion = %d, want %d", g.SchemaVersion, SchemaVersion)
	}
	if g.Memo == "" {
		t.Error("genesis payload should carry a marker memo")
	}
}
