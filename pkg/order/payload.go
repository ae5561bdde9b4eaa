// Package order defines the order payload recorded on the ledger.
package order

import "encoding/binary"

// SchemaVersion is the current payload schema version. It is the first field
// of the canonical encoding, so a schema change always changes the digest.
const SchemaVersion uint16 = 1

// LineItem is a single ordered menu item.
type LineItem struct {
	Name       string `json:"name"`
	Quantity   uint32 `json:"quantity"`
	PriceCents uint64 `json:"price_cents"`
}

// Payload is the immutable order snapshot stored in a ledger block.
// Monetary amounts are in cents. The zero OrderID is reserved for the
// genesis block.
type Payload struct {
	SchemaVersion  uint16     `json:"schema_version"`
	OrderID        uint64     `json:"order_id"`
	CustomerID     uint64     `json:"customer_id"`
	CustomerName   string     `json:"customer_name,omitempty"`
	RestaurantID   uint64     `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name,omitempty"`
	Items          []LineItem `json:"items,omitempty"`
	TotalCents     uint64     `json:"total_cents"`
	PaymentMethod  string     `json:"payment_method,omitempty"`
	DeliveryAddr   string     `json:"delivery_address,omitempty"`
	Memo           string     `json:"memo,omitempty"`
}

// CanonicalBytes returns the fixed-order byte encoding used for hashing.
// Format (all integers little-endian, strings length-prefixed with uint32):
//
//	schema_version(2) | order_id(8) | customer_id(8) | restaurant_id(8) |
//	total_cents(8) | customer_name | restaurant_name | payment_method |
//	delivery_address | memo | item_count(4) |
//	per item: name | quantity(4) | price_cents(8)
//
// The digest depends on this exact layout; never reorder fields within a
// schema version.
func (p *Payload) CanonicalBytes() []byte {
	buf := make([]byte, 0, 128)
	buf = binary.LittleEndian.AppendUint16(buf, p.SchemaVersion)
	buf = binary.LittleEndian.AppendUint64(buf, p.OrderID)
	buf = binary.LittleEndian.AppendUint64(buf, p.CustomerID)
	buf = binary.LittleEndian.AppendUint64(buf, p.RestaurantID)
	buf = binary.LittleEndian.AppendUint64(buf, p.TotalCents)
	buf = appendString(buf, p.CustomerName)
	buf = appendString(buf, p.RestaurantName)
	buf = appendString(buf, p.PaymentMethod)
	buf = appendString(buf, p.DeliveryAddr)
	buf = appendString(buf, p.Memo)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.Items)))
	for _, item := range p.Items {
		buf = appendString(buf, item.Name)
		buf = binary.LittleEndian.AppendUint32(buf, item.Quantity)
		buf = binary.LittleEndian.AppendUint64(buf, item.PriceCents)
	}
	return buf
}

// appendString appends a uint32 length prefix followed by the string bytes.
func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// Genesis returns the marker payload for the ledger's first block.
func Genesis() Payload {
	return Payload{
		SchemaVersion: SchemaVersion,
		Memo:          "order ledger genesis",
	}
}
