//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"batepapo/domain"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const messagePrefix = "msg:"

type IMessageRepository interface {
	Append(m domain.Message) error
	Scan() ([]domain.Message, error)
	ScanReverse(fn func(m domain.Message) (bool, error)) error
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

// NewMessageRepository wires a log store backed by a Badger sequence.
// The caller must Close the repository to release unused sequence slots.
func NewMessageRepository(db *badger.DB, log *slog.Logger) (MessageRepository, error) {
	seq, err := db.GetSequence([]byte("seq:msg"), 64)
	if err != nil {
		return MessageRepository{}, fmt.Errorf("message sequence: %w", err)
	}
	return MessageRepository{db: db, log: log, seq: seq}, nil
}

func (m MessageRepository) Close() error {
	return m.seq.Release()
}

// Append persists a message under a key "msg:{seq_padded}:{uuid}":
//  1. The sequence number with 19-digit zero padding gives every reader
//     the same insertion order (lexicographical key order).
//  2. The UUID suffix is a collision disconnector should the sequence
//     ever be rebuilt from a restored store.
func (m MessageRepository) Append(msg domain.Message) error {
	n, err := m.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	key := fmt.Sprintf("msg:%019d:%s", n, uuid.New())

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Scan returns the full log snapshot in insertion order.
func (m MessageRepository) Scan() ([]domain.Message, error) {
	var messages []domain.Message

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(messagePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var msg domain.Message
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &msg)
			})
			if err != nil {
				return err
			}
			messages = append(messages, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// ScanReverse walks the log from the most recent entry backwards,
// calling fn for each message until fn returns false. It lets callers
// take the last N records without materializing the full history.
func (m MessageRepository) ScanReverse(fn func(msg domain.Message) (bool, error)) error {
	return m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(messagePrefix)
		// Seek past the last possible key, then walk backwards.
		seekKey := append([]byte{}, prefix...)
		seekKey = append(seekKey, 0xFF)

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var msg domain.Message
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &msg)
			})
			if err != nil {
				return err
			}
			keepGoing, err := fn(msg)
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		}
		return nil
	})
}
