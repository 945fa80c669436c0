package a2a

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"

	"github.com/hupe1980/agentbus/core"
	"github.com/hupe1980/agentbus/logging"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Card overrides the generated agent card.
	Card *a2a.AgentCard
	// TaskStore persists task state. Defaults to an in-memory store.
	TaskStore a2asrv.TaskStore
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Server serves a single agent over the A2A protocol: JSON-RPC at the root
// and the agent card at the well-known path.
type Server struct {
	addr        string
	card        *a2a.AgentCard
	jsonrpc     http.Handler
	cardHandler http.Handler
	logger      logging.Logger
	server      *http.Server
}

// NewServer wires the agent behind an executor, task store and agent card.
func NewServer(agent core.Agent, optFns ...func(o *ServerOptions)) *Server {
	opts := ServerOptions{
		Addr:      ":8080",
		TaskStore: NewInMemoryTaskStore(),
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	card := opts.Card
	if card == nil {
		card = NewAgentCard(agent, fmt.Sprintf("http://localhost%s", opts.Addr))
	}

	executor := NewExecutor(agent, func(o *ExecutorOptions) {
		o.Logger = opts.Logger
	})
	handler := a2asrv.NewHandler(executor, a2asrv.WithTaskStore(opts.TaskStore))

	return &Server{
		addr:        opts.Addr,
		card:        card,
		jsonrpc:     a2asrv.NewJSONRPCHandler(handler),
		cardHandler: a2asrv.NewStaticAgentCardHandler(card),
		logger:      opts.Logger,
	}
}

// Handler returns the HTTP handler serving the A2A endpoint. Useful for
// embedding the server into an existing mux or test server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(a2asrv.WellKnownAgentCardPath, s.cardHandler)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPost:
			s.jsonrpc.ServeHTTP(w, r)
		case http.MethodGet:
			s.cardHandler.ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	return mux
}

// Start runs the server until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("a2a.server.start", "addr", s.addr, "agent", s.card.Name)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("a2a.server.stop", "addr", s.addr)
	return s.server.Shutdown(shutdownCtx)
}

// Card returns the agent card served by this server.
func (s *Server) Card() *a2a.AgentCard { return s.card }

// Address returns the configured listen address.
func (s *Server) Address() string { return s.addr }
