package http

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
)

// Server — это обёртка над стандартным http.Server
type Server struct {
	httpServer *http.Server
}

// NewServer создает и конфигурирует экземпляр Server
// CORS разрешает стандартные CRUD-методы для фронтенда
func NewServer(port string, handler http.Handler, timeout time.Duration) *Server {
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         port,
			Handler:      c.Handler(handler),
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

// Run запускает HTTP-сервер
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
