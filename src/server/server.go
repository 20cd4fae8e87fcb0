package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/logrusorgru/aurora"

	"toruslife/src/store"
)

//Config represents the server's configurable options
type Config struct {
	Addr           string
	MaxGenerations int
	MaxBodyBytes   int64
}

var DefaultConfig = Config{
	Addr:           ":3001",
	MaxGenerations: 10000,
	MaxBodyBytes:   10 << 20,
}

//Server serves the game API under /game
type Server struct {
	cfg    Config
	store  *store.Store
	logger *log.Logger
	mux    *http.ServeMux
}

//New creates the Server
//logger may be nil, then the standard logger is used
func New(cfg Config, st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	s := &Server{cfg: cfg, store: st, logger: logger, mux: http.NewServeMux()}
	s.mux.HandleFunc("/game/initialize", method(http.MethodPost, s.handleInitialize))
	s.mux.HandleFunc("/game/state", method(http.MethodPost, s.handleState))
	s.mux.HandleFunc("/game/evolve", method(http.MethodPost, s.handleEvolve))
	s.mux.HandleFunc("/game/save/", method(http.MethodPost, s.handleSave))
	s.mux.HandleFunc("/game/load/", method(http.MethodGet, s.handleLoad))
	s.mux.HandleFunc("/game/all", method(http.MethodGet, s.handleAll))
	return s
}

//ServeHTTP adds the CORS headers and dispatches the request
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Body != nil && s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	s.mux.ServeHTTP(w, r)
}

//ListenAndServe serves until ctx is cancelled, then shuts the server down
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Printf("%v on %v", aurora.Green("Server is running"), s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func method(m string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			w.Header().Set("Allow", m)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("%v encode response: %v", aurora.Red("ERROR"), err)
	}
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, messageResponse{Message: msg})
}

func (s *Server) logError(r *http.Request, msg string, err error) {
	s.logger.Printf("%v %v %v: %v: %v", aurora.Red("ERROR"), r.Method, r.URL.Path, msg, err)
}
