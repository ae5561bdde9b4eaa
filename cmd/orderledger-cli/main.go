// orderledger-cli is a command-line client for interacting with an orderledgerd node.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/villainfoods/orderledger/internal/rpc"
	"github.com/villainfoods/orderledger/internal/rpcclient"
	"github.com/villainfoods/orderledger/pkg/order"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	rpcURL := "http://127.0.0.1:8640"

	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	client := rpcclient.New(rpcURL)
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "status":
		cmdStatus(client)
	case "block":
		cmdBlock(client, cmdArgs)
	case "entry":
		cmdEntry(client, cmdArgs)
	case "verify":
		cmdVerify(client)
	case "record":
		cmdRecord(client, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: orderledger-cli [global flags] <command> [flags]

Global flags:
  --rpc <url>         RPC endpoint (default: http://127.0.0.1:8640)

Commands:
  status              Show ledger status
  block <index>       Show the block at a ledger index
  entry <order-id>    Show the ledger entry for an order
  verify              Run a full-chain integrity scan
  record --order-id <id> --total-cents <n> [flags]
                      Record a delivered order on the ledger

Record flags:
  --order-id          Order ID (required)
  --customer-id       Customer ID
  --customer-name     Customer name
  --restaurant-id     Restaurant ID
  --restaurant-name   Restaurant name
  --total-cents       Order total in cents (required)
  --payment           Payment method
  --address           Delivery address
  --items             Line items JSON, e.g.
                      '[{"name":"Wrap","quantity":2,"price_cents":1150}]'
`)
}

// ── status ──────────────────────────────────────────────────────────────

func cmdStatus(client *rpcclient.Client) {
	info, err := client.LedgerInfo()
	if err != nil {
		fatal("ledger_getInfo: %v", err)
	}

	fmt.Printf("Length:     %d\n", info.ChainLength)
	if info.ChainLength > 0 {
		fmt.Printf("Tip Index:  %d\n", info.TipIndex)
		fmt.Printf("Tip:        %s\n", info.TipHash)
	}
	fmt.Printf("Difficulty: %d\n", info.Difficulty)
}

// ── block ───────────────────────────────────────────────────────────────

func cmdBlock(client *rpcclient.Client, args []string) {
	if len(args) < 1 {
		fatal("Usage: orderledger-cli block <index>")
	}

	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fatal("invalid index %q", args[0])
	}

	blk, err := client.BlockByIndex(index)
	if err != nil {
		fatal("ledger_getBlockByIndex: %v", err)
	}
	printBlock(blk)
}

// ── entry ───────────────────────────────────────────────────────────────

func cmdEntry(client *rpcclient.Client, args []string) {
	if len(args) < 1 {
		fatal("Usage: orderledger-cli entry <order-id>")
	}

	orderID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fatal("invalid order id %q", args[0])
	}

	entry, err := client.Entry(orderID)
	if err != nil {
		fatal("ledger_getEntry: %v", err)
	}
	if !entry.Recorded {
		fmt.Printf("Order %d has no ledger entry\n", orderID)
		return
	}
	printBlock(entry.Block)
}

func printBlock(blk *rpc.BlockResult) {
	fmt.Printf("Index:     %d\n", blk.Index)
	ts := time.Unix(int64(blk.Timestamp), 0).UTC()
	fmt.Printf("Timestamp: %s\n", ts.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("Prev:      %s\n", blk.PrevHash)
	fmt.Printf("Nonce:     %d\n", blk.Nonce)
	fmt.Printf("Hash:      %s\n", blk.Hash)

	p := blk.Payload
	if p.OrderID == 0 {
		fmt.Printf("Payload:   genesis (%s)\n", p.Memo)
		return
	}
	fmt.Printf("Order:     %d\n", p.OrderID)
	if p.CustomerName != "" {
		fmt.Printf("Customer:  %s (%d)\n", p.CustomerName, p.CustomerID)
	}
	if p.RestaurantName != "" {
		fmt.Printf("Restaurant: %s (%d)\n", p.RestaurantName, p.RestaurantID)
	}
	for _, item := range p.Items {
		fmt.Printf("  %dx %-24s %s\n", item.Quantity, item.Name, formatCents(item.PriceCents))
	}
	fmt.Printf("Total:     %s\n", formatCents(p.TotalCents))
	if p.PaymentMethod != "" {
		fmt.Printf("Payment:   %s\n", p.PaymentMethod)
	}
	if p.DeliveryAddr != "" {
		fmt.Printf("Address:   %s\n", p.DeliveryAddr)
	}
}

func formatCents(cents uint64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// ── verify ──────────────────────────────────────────────────────────────

func cmdVerify(client *rpcclient.Client) {
	result, err := client.Verify()
	if err != nil {
		fatal("ledger_verify: %v", err)
	}

	if result.Valid {
		fmt.Printf("VALID: %s\n", result.Message)
		return
	}

	fmt.Printf("INVALID: %s\n", result.Message)
	if result.FailedIndex != nil {
		fmt.Printf("Failed Index: %d\n", *result.FailedIndex)
	}
	if result.FailedOrderID != 0 {
		fmt.Printf("Failed Order: %d\n", result.FailedOrderID)
	}
	fmt.Printf("Reason:       %s\n", result.Reason)
	os.Exit(1)
}

// ── record ──────────────────────────────────────────────────────────────

func cmdRecord(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	orderID := fs.Uint64("order-id", 0, "Order ID (required)")
	customerID := fs.Uint64("customer-id", 0, "Customer ID")
	customerName := fs.String("customer-name", "", "Customer name")
	restaurantID := fs.Uint64("restaurant-id", 0, "Restaurant ID")
	restaurantName := fs.String("restaurant-name", "", "Restaurant name")
	totalCents := fs.Uint64("total-cents", 0, "Order total in cents (required)")
	payment := fs.String("payment", "", "Payment method")
	address := fs.String("address", "", "Delivery address")
	itemsJSON := fs.String("items", "", "Line items as JSON array")
	fs.Parse(args)

	if *orderID == 0 {
		fatal("--order-id is required")
	}
	if *totalCents == 0 {
		fatal("--total-cents is required")
	}

	var items []order.LineItem
	if *itemsJSON != "" {
		if err := json.Unmarshal([]byte(*itemsJSON), &items); err != nil {
			fatal("invalid --items JSON: %v", err)
		}
	}

	result, err := client.RecordDelivery(rpc.RecordDeliveryParam{
		OrderID:        *orderID,
		CustomerID:     *customerID,
		CustomerName:   *customerName,
		RestaurantID:   *restaurantID,
		RestaurantName: *restaurantName,
		Items:          items,
		TotalCents:     *totalCents,
		PaymentMethod:  *payment,
		DeliveryAddr:   *address,
	})
	if err != nil {
		fatal("order_recordDelivery: %v", err)
	}
	if !result.Recorded {
		fatal("not recorded: %s", result.Error)
	}

	fmt.Printf("Recorded order %d\n", *orderID)
	fmt.Printf("Index: %d\n", result.Index)
	fmt.Printf("Hash:  %s\n", result.Hash)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
