package test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"batepapo/domain"
	"batepapo/repositories"
	"batepapo/rest"
	"batepapo/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

// Test_Scenario drives the whole stack over HTTP: registration,
// broadcast and private posting, filtered reads and liveness refresh,
// against a real Badger store.
func Test_Scenario(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	// Reduced to 16 Mo for testing (avoid 2 Go of storage)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	participantRepository := repositories.NewParticipantRepository(db, log)
	messageRepository, err := repositories.NewMessageRepository(db, log)
	req.NoError(err)
	t.Cleanup(func() { _ = messageRepository.Close() })

	presenceService := services.NewPresenceService(participantRepository, messageRepository, log)
	messageService := services.NewMessageService(participantRepository, messageRepository, log)
	server := httptest.NewServer(rest.NewServer(presenceService, messageService, log).Handler())
	t.Cleanup(server.Close)

	do := func(method, path, user, body string) *http.Response {
		t.Helper()
		httpReq, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
		req.NoError(err)
		if body != "" {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if user != "" {
			httpReq.Header.Set("User", user)
		}
		resp, err := server.Client().Do(httpReq)
		req.NoError(err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	// 1. Alice and Bob join; a duplicate registration is refused
	req.Equal(http.StatusCreated, do(http.MethodPost, "/participants", "", `{"name":"Alice"}`).StatusCode)
	req.Equal(http.StatusCreated, do(http.MethodPost, "/participants", "", `{"name":"Bob"}`).StatusCode)
	req.Equal(http.StatusConflict, do(http.MethodPost, "/participants", "", `{"name":"Alice"}`).StatusCode)
	req.Equal(http.StatusUnprocessableEntity, do(http.MethodPost, "/participants", "", `{"name":""}`).StatusCode)

	// 2. The directory holds exactly one Alice
	resp := do(http.MethodGet, "/participants", "", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	var participants []domain.Participant
	req.NoError(json.NewDecoder(resp.Body).Decode(&participants))
	req.Len(participants, 2)
	req.Len(lo.Filter(participants, func(p domain.Participant, _ int) bool {
		return p.Name == "Alice"
	}), 1)

	// 3. Alice broadcasts, Bob sends Alice a private message
	req.Equal(http.StatusCreated, do(http.MethodPost, "/messages", "Alice",
		`{"to":"Todos","text":"hi","type":"message"}`).StatusCode)
	req.Equal(http.StatusCreated, do(http.MethodPost, "/messages", "Bob",
		`{"to":"Alice","text":"secret","type":"private_message"}`).StatusCode)
	req.Equal(http.StatusUnprocessableEntity, do(http.MethodPost, "/messages", "Carol",
		`{"to":"Todos","text":"hi","type":"message"}`).StatusCode)

	// 4. Carol reads: join announcements and the broadcast, never the secret
	resp = do(http.MethodGet, "/messages", "Carol", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	var carolView []domain.Message
	req.NoError(json.NewDecoder(resp.Body).Decode(&carolView))
	req.Len(carolView, 3)
	for _, m := range carolView {
		req.NotEqual("secret", m.Text)
	}

	// 5. Bob reads with limit=1: the single most recent visible message
	resp = do(http.MethodGet, "/messages?limit=1", "Bob", "")
	req.Equal(http.StatusOK, resp.StatusCode)
	var bobView []domain.Message
	req.NoError(json.NewDecoder(resp.Body).Decode(&bobView))
	req.Len(bobView, 1)
	req.Equal("secret", bobView[0].Text)

	// 6. Liveness refresh succeeds twice for Bob, 404 for Carol
	req.Equal(http.StatusOK, do(http.MethodPost, "/status", "Bob", "").StatusCode)
	req.Equal(http.StatusOK, do(http.MethodPost, "/status", "Bob", "").StatusCode)
	req.Equal(http.StatusNotFound, do(http.MethodPost, "/status", "Carol", "").StatusCode)
}
