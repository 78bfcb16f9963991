// Package rest exposes the chat core over HTTP, mirroring the
// participant/message/status surface. Handlers stay thin: parse the
// request, call a service, map the outcome to a status code. The caller
// identity travels in the "User" header and is always passed explicitly
// into the core.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"batepapo/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo     *echo.Echo
	presence services.IPresenceService
	messages services.IMessageService
	log      *slog.Logger
}

func NewServer(
	presence services.IPresenceService,
	messages services.IMessageService,
	log *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		presence: presence,
		messages: messages,
		log:      log,
	}

	e.POST("/participants", s.registerParticipant)
	e.GET("/participants", s.listParticipants)
	e.POST("/messages", s.postMessage)
	e.GET("/messages", s.getMessages)
	e.POST("/status", s.refreshStatus)

	return s
}

// Handler exposes the routed handler, mainly for tests driving the
// server through httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
