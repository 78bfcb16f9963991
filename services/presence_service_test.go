package services

import (
	"log/slog"
	"testing"
	"time"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := logs.GetLoggerFromLevel(slog.LevelError)
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	t.Run("should insert the participant then announce the join", func(t *testing.T) {
		req := require.New(t)
		participants := mocks.NewMockIParticipantRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewPresenceService(participants, messages, log)
		svc.now = func() time.Time { return at }

		insert := participants.EXPECT().
			InsertIfAbsent(domain.Participant{Name: "Alice", LastStatus: at.UnixMilli()}).
			Return(nil).
			Times(1)
		// The directory write happens before the log append
		messages.EXPECT().
			Append(domain.Message{
				From: "Alice",
				To:   domain.Broadcast,
				Text: "entra na sala...",
				Type: domain.TypeStatus,
				Time: "10:30:00",
			}).
			Return(nil).
			Times(1).
			After(insert)

		req.NoError(svc.Register("Alice"))
	})

	t.Run("should fail with validation error on empty name", func(t *testing.T) {
		req := require.New(t)
		participants := mocks.NewMockIParticipantRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewPresenceService(participants, messages, log)

		// Nothing may be written on a validation failure
		participants.EXPECT().InsertIfAbsent(gomock.Any()).Times(0)
		messages.EXPECT().Append(gomock.Any()).Times(0)

		err := svc.Register("")
		req.ErrorIs(err, errors.ErrValidation)
	})

	t.Run("should propagate conflict without announcing", func(t *testing.T) {
		req := require.New(t)
		participants := mocks.NewMockIParticipantRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewPresenceService(participants, messages, log)

		participants.EXPECT().
			InsertIfAbsent(gomock.Any()).
			Return(errors.ErrNameTaken).
			Times(1)
		messages.EXPECT().Append(gomock.Any()).Times(0)

		err := svc.Register("Alice")
		req.ErrorIs(err, errors.ErrNameTaken)
	})
}

func Test_RefreshLiveness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := logs.GetLoggerFromLevel(slog.LevelError)

	t.Run("should stamp the current time for a known participant", func(t *testing.T) {
		req := require.New(t)
		participants := mocks.NewMockIParticipantRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewPresenceService(participants, messages, log)

		at := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return at }

		participants.EXPECT().
			UpdateLastStatus("Alice", at.UnixMilli()).
			Return(nil).
			Times(1)

		req.NoError(svc.RefreshLiveness("Alice"))
	})

	t.Run("should fail with not found for an unknown participant", func(t *testing.T) {
		req := require.New(t)
		participants := mocks.NewMockIParticipantRepository(ctrl)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewPresenceService(participants, messages, log)

		participants.EXPECT().
			UpdateLastStatus("Ghost", gomock.Any()).
			Return(errors.ErrParticipantNotFound).
			Times(1)

		err := svc.RefreshLiveness("Ghost")
		req.ErrorIs(err, errors.ErrParticipantNotFound)
	})
}
