package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/campaign"
	"github.com/peterkuimelis/solorun/internal/game"
	solonet "github.com/peterkuimelis/solorun/internal/net"
)

//go:embed static
var staticFiles embed.FS

// Config configures the web server.
type Config struct {
	Catalog *game.Catalog
	Graph   *campaign.Graph
	Store   campaign.ProgressStore
	Logger  *zap.Logger
	Seed    int64
}

// Server is the solorun web UI server. Each WebSocket connection runs its
// own campaign session.
type Server struct {
	catalog *game.Catalog
	graph   *campaign.Graph
	session solonet.SessionConfig
	logger  *zap.Logger
	mux     *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(cfg Config) *Server {
	if cfg.Catalog == nil {
		cfg.Catalog = game.DefaultCatalog()
	}
	if cfg.Graph == nil {
		cfg.Graph = campaign.DefaultGraph()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		catalog: cfg.Catalog,
		graph:   cfg.Graph,
		logger:  cfg.Logger,
		mux:     http.NewServeMux(),
		session: solonet.SessionConfig{
			Catalog: cfg.Catalog,
			Graph:   cfg.Graph,
			Store:   cfg.Store,
			Ops:     cfg.Logger,
			Seed:    cfg.Seed,
			OnBossUnlock: func(heroID string, boss campaign.Node) {
				cfg.Logger.Info("boss defeated, unlock signaled", zap.String("hero", heroID), zap.String("boss", boss.Label))
			},
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/heroes", s.handleHeroes)
	s.mux.HandleFunc("GET /api/map", s.handleMap)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.mux }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := s.catalog.Cards()
	views := make([]solonet.CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, solonet.BuildCardView(c))
	}
	writeJSON(w, views)
}

func (s *Server) handleHeroes(w http.ResponseWriter, r *http.Request) {
	heroes := s.catalog.Heroes()
	views := make([]solonet.HeroView, 0, len(heroes))
	for _, h := range heroes {
		views = append(views, solonet.BuildHeroView(h))
	}
	writeJSON(w, views)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, solonet.BuildMapView(s.graph, nil))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	log := s.logger.With(zap.String("remote", r.RemoteAddr))
	log.Info("websocket connected")

	sess := solonet.NewSession(s.session)
	defer sess.Close()

	for {
		var msg solonet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				log.Info("websocket closed")
				return
			}
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Warn("websocket read", zap.Error(err))
			return
		}
		resp := sess.Handle(ctx, msg)
		if err := wsjson.Write(ctx, wsConn, resp); err != nil {
			log.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

// Run serves HTTP on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
