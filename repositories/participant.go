//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"batepapo/domain"
	"batepapo/errors"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const participantPrefix = "participant:"

type IParticipantRepository interface {
	InsertIfAbsent(p domain.Participant) error
	Get(name string) (domain.Participant, error)
	UpdateLastStatus(name string, at int64) error
	List() ([]domain.Participant, error)
}

type ParticipantRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewParticipantRepository(db *badger.DB, log *slog.Logger) ParticipantRepository {
	return ParticipantRepository{db: db, log: log}
}

// InsertIfAbsent persists a participant keyed by name, failing with
// ErrNameTaken when the name is already present. Check and insert run
// inside one Badger transaction, so two concurrent registrations of the
// same name cannot both succeed.
func (r ParticipantRepository) InsertIfAbsent(p domain.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	// Badger aborts one of two overlapping transactions touching the
	// same key with ErrConflict. Retrying re-runs the check against the
	// committed state, so the loser observes the winner's entry and
	// gets ErrNameTaken.
	for {
		err := r.db.Update(func(txn *badger.Txn) error {
			key := []byte(participantPrefix + p.Name)
			if _, err := txn.Get(key); err == nil {
				return errors.ErrNameTaken
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			return txn.Set(key, data)
		})
		if err != badger.ErrConflict {
			return err
		}
	}
}

func (r ParticipantRepository) Get(name string) (domain.Participant, error) {
	var p domain.Participant

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(participantPrefix + name))
		if err == badger.ErrKeyNotFound {
			return errors.ErrParticipantNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if err != nil {
		return domain.Participant{}, err
	}

	return p, nil
}

// UpdateLastStatus rewrites the liveness timestamp of an existing entry.
// The read-modify-write stays inside a single transaction; conflicted
// transactions are retried since the refresh is idempotent.
func (r ParticipantRepository) UpdateLastStatus(name string, at int64) error {
	for {
		err := r.updateLastStatus(name, at)
		if err != badger.ErrConflict {
			return err
		}
	}
}

func (r ParticipantRepository) updateLastStatus(name string, at int64) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(participantPrefix + name)
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return errors.ErrParticipantNotFound
		}
		if err != nil {
			return err
		}

		var p domain.Participant
		if err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		}); err != nil {
			return err
		}

		p.LastStatus = at
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal failed: %w", err)
		}
		return txn.Set(key, data)
	})
}

// List returns a full snapshot of the directory via a prefix scan.
func (r ParticipantRepository) List() ([]domain.Participant, error) {
	var participants []domain.Participant

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(participantPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p domain.Participant
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			})
			if err != nil {
				return err
			}
			participants = append(participants, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return participants, nil
}
