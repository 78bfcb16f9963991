// Viewer opens the chat store in read-only mode and prints the
// participant directory and the message log as tables. It can run while
// the server holds the Badger lock.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"batepapo/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "/tmp/batepapo", "Path to badger DB")
	flag.Parse()

	// BypassLockGuard allows opening while the server holds the lock
	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	color.Cyan.Println("Participants")
	if err := printParticipants(db); err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	color.Cyan.Println("Messages")
	if err := printMessages(db); err != nil {
		log.Fatal(err)
	}
}

func printParticipants(db *badger.DB) error {
	table := newTable([]string{"Name", "Last Status"})

	err := scanPrefix(db, "participant:", func(_ string, val []byte) error {
		var p domain.Participant
		if err := json.Unmarshal(val, &p); err != nil {
			return err
		}
		lastStatus := time.UnixMilli(p.LastStatus).Format("15:04:05")
		table.Append([]string{p.Name, lastStatus})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func printMessages(db *badger.DB) error {
	table := newTable([]string{"Seq", "Time", "Type", "From", "To", "Text"})

	err := scanPrefix(db, "msg:", func(key string, val []byte) error {
		var m domain.Message
		if err := json.Unmarshal(val, &m); err != nil {
			return err
		}

		seq := "-"
		if parts := strings.Split(key, ":"); len(parts) >= 2 {
			seq = strings.TrimLeft(parts[1], "0")
			if seq == "" {
				seq = "0"
			}
		}

		messageType := string(m.Type)
		if m.Type == domain.TypePrivate {
			messageType = color.Red.Sprint(messageType)
		}

		table.Append([]string{seq, m.Time, messageType, m.From, m.To, m.Text})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func scanPrefix(db *badger.DB, prefix string, fn func(key string, val []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if err := item.Value(func(v []byte) error {
				return fn(key, v)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
