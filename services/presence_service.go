//go:generate go run go.uber.org/mock/mockgen -source=presence_service.go -destination=../mocks/mock_presence_service.go -package=mocks
package services

import (
	"batepapo/domain"
	"batepapo/repositories"
	"log/slog"
	"time"
)

const joinText = "entra na sala..."

type IPresenceService interface {
	Register(name string) error
	RefreshLiveness(name string) error
	List() ([]domain.Participant, error)
}

type PresenceService struct {
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	log          *slog.Logger
	now          func() time.Time
}

func NewPresenceService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	log *slog.Logger,
) *PresenceService {
	return &PresenceService{
		participants: participants,
		messages:     messages,
		log:          log,
		now:          time.Now,
	}
}

// Register creates a presence record and announces the join to the room.
// First registration for a name wins; the directory insert is atomic, so
// concurrent duplicates receive ErrNameTaken. The directory write
// happens before the log append: a visible join announcement implies a
// visible directory entry.
func (s *PresenceService) Register(name string) error {
	now := s.now()
	participant := domain.Participant{
		Name:       name,
		LastStatus: now.UnixMilli(),
	}

	if err := domain.ValidateParticipant(participant); err != nil {
		return err
	}

	if err := s.participants.InsertIfAbsent(participant); err != nil {
		return err
	}

	status := domain.Message{
		From: name,
		To:   domain.Broadcast,
		Text: joinText,
		Type: domain.TypeStatus,
		Time: now.Format(domain.TimeLayout),
	}
	if err := s.messages.Append(status); err != nil {
		return err
	}

	s.log.Info("participant joined", "name", name)
	return nil
}

// RefreshLiveness stamps the participant's lastStatus with the current
// time. The log is never touched.
func (s *PresenceService) RefreshLiveness(name string) error {
	return s.participants.UpdateLastStatus(name, s.now().UnixMilli())
}

func (s *PresenceService) List() ([]domain.Participant, error) {
	return s.participants.List()
}
