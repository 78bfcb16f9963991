package rest

import (
	"net/http"
	"strconv"

	"batepapo/domain"
	"batepapo/errors"

	"github.com/labstack/echo/v4"
)

// identityHeader carries the caller's participant name, assigned
// out-of-band by the client.
const identityHeader = "User"

type registerRequest struct {
	Name string `json:"name"`
}

type postMessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

func (s *Server) registerParticipant(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body").SetInternal(err)
	}

	if err := s.presence.Register(req.Name); err != nil {
		return s.fail(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) listParticipants(c echo.Context) error {
	participants, err := s.presence.List()
	if err != nil {
		return s.fail(err)
	}
	if participants == nil {
		participants = []domain.Participant{}
	}
	return c.JSON(http.StatusOK, participants)
}

func (s *Server) postMessage(c echo.Context) error {
	user := c.Request().Header.Get(identityHeader)

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body").SetInternal(err)
	}

	if err := s.messages.Post(user, req.To, req.Text, domain.MessageType(req.Type)); err != nil {
		return s.fail(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) getMessages(c echo.Context) error {
	user := c.Request().Header.Get(identityHeader)
	limit := parseLimit(c.QueryParam("limit"))

	messages, err := s.messages.Read(user, limit)
	if err != nil {
		return s.fail(err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

func (s *Server) refreshStatus(c echo.Context) error {
	user := c.Request().Header.Get(identityHeader)

	if err := s.presence.RefreshLiveness(user); err != nil {
		return s.fail(err)
	}
	return c.NoContent(http.StatusOK)
}

// parseLimit returns nil for an absent or invalid limit, which yields
// the full filtered history downstream.
func parseLimit(raw string) *int {
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func (s *Server) fail(err error) *echo.HTTPError {
	httpErr := errors.MapToHTTPError(err)
	if httpErr.Code == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	return httpErr
}
