//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"batepapo/domain"
	"batepapo/errors"
	"batepapo/repositories"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
)

type IMessageService interface {
	Post(sender, to, text string, messageType domain.MessageType) error
	Read(reader string, limit *int) ([]domain.Message, error)
}

type MessageService struct {
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	log          *slog.Logger
	now          func() time.Time
}

func NewMessageService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	log *slog.Logger,
) *MessageService {
	return &MessageService{
		participants: participants,
		messages:     messages,
		log:          log,
		now:          time.Now,
	}
}

// Post validates the message schema, requires the sender to be a
// registered participant, stamps the server clock and appends to the
// log. Nothing is written when any check fails.
func (s *MessageService) Post(sender, to, text string, messageType domain.MessageType) error {
	message := domain.Message{
		From: sender,
		To:   to,
		Text: text,
		Type: messageType,
		Time: s.now().Format(domain.TimeLayout),
	}

	if err := domain.ValidateMessage(message); err != nil {
		return err
	}

	if _, err := s.participants.Get(sender); err != nil {
		if err == errors.ErrParticipantNotFound {
			return fmt.Errorf("%w: %s", errors.ErrUnknownSender, sender)
		}
		return err
	}

	return s.messages.Append(message)
}

// Read returns the snapshot of messages the reader may see, in
// insertion order. A valid non-negative limit keeps only the last limit
// entries of the filtered sequence; a nil limit returns the full
// filtered history. Filtering always happens before truncation: with a
// limit the log is walked backwards, collecting visible messages until
// the limit is reached, so the full history is never materialized.
func (s *MessageService) Read(reader string, limit *int) ([]domain.Message, error) {
	if limit == nil {
		messages, err := s.messages.Scan()
		if err != nil {
			return nil, err
		}
		return lo.Filter(messages, func(m domain.Message, _ int) bool {
			return m.VisibleTo(reader)
		}), nil
	}

	if *limit <= 0 {
		return []domain.Message{}, nil
	}

	visible := make([]domain.Message, 0, *limit)
	err := s.messages.ScanReverse(func(m domain.Message) (bool, error) {
		if !m.VisibleTo(reader) {
			return true, nil
		}
		visible = append(visible, m)
		return len(visible) < *limit, nil
	})
	if err != nil {
		return nil, err
	}

	lo.Reverse(visible)
	return visible, nil
}
