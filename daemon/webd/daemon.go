package webd

import (
	"context"
	"errors"
	"github.com/cyz14/s2cells/common"
	"github.com/cyz14/s2cells/flat"
	"github.com/cyz14/s2cells/params"
	"github.com/cyz14/s2cells/render"
	"github.com/cyz14/s2cells/s2"
	"github.com/cyz14/s2cells/viewer"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/olahol/melody"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

var ErrAlreadyRunning = errors.New("web daemon already running")

// WebDaemon serves level datasets and drives an embedded viewer
// whose frames are pushed to websocket clients.
type WebDaemon struct {
	Config *params.WebDaemonConfig

	logger         *slog.Logger
	started        time.Time
	melodyInstance *melody.Melody

	flat     *flat.Flat
	datasets *lru.Cache[s2.CellLevel, []byte]
	lastSent *ttlcache.Cache[string, []byte]
	recent   *common.RingBuffer[broadstatus]

	globe  *render.Globe
	viewer *viewer.Viewer

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	subs     []event.Subscription
}

func NewWebDaemon(config *params.WebDaemonConfig) (*WebDaemon, error) {
	if config == nil {
		config = params.DefaultWebDaemonConfig()
	}
	if config.Viewer == nil {
		config.Viewer = params.DefaultViewerConfig()
	}
	if len(config.DataLevels) == 0 {
		config.DataLevels = params.SupportedLevels
	}
	datasets, err := lru.New[s2.CellLevel, []byte](params.CacheDatasetsSize)
	if err != nil {
		return nil, err
	}
	d := &WebDaemon{
		Config:   config,
		logger:   slog.With("d", "web"),
		datasets: datasets,
		lastSent: ttlcache.New[string, []byte](
			ttlcache.WithTTL[string, []byte](params.CacheLastFrameTTL),
		),
		recent: common.NewRingBuffer[broadstatus](params.StatusRecentLoads),
		globe:  render.NewGlobe(),
	}
	if config.DataDir != "" {
		d.flat = flat.NewFlatWithRoot(config.DataDir)
	}
	return d, nil
}

// Start listens, serves HTTP and runs the viewer. It does not block.
func (s *WebDaemon) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return ErrAlreadyRunning
	}

	listener, err := net.Listen(s.Config.Network, s.Config.Address)
	if err != nil {
		return err
	}
	s.listener = listener
	s.started = time.Now()

	vc := *s.Config.Viewer
	client := &http.Client{Timeout: vc.RequestTimeout}
	if vc.DataSourceBase == "" {
		// The viewer reads its datasets back from this daemon,
		// dialing the listener directly so unix sockets work too.
		network, addr := listener.Addr().Network(), listener.Addr().String()
		vc.DataSourceBase = "http://" + addr
		if network != "tcp" {
			vc.DataSourceBase = "http://" + network
		}
		client.Transport = &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var dialer net.Dialer
				return dialer.DialContext(ctx, network, addr)
			},
		}
	}
	s.viewer = viewer.NewViewer(&vc, s.globe, viewer.NewLoader(&vc, client))
	s.initMelody()

	s.server = &http.Server{Handler: s.newRouter()}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.logger.Info("Starting web daemon",
		"network", listener.Addr().Network(), "address", listener.Addr().String(),
		"datadir", s.Config.DataDir, "source", vc.DataSourceBase)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", "error", err)
		}
	}()
	go func() {
		defer s.wg.Done()
		if err := s.viewer.Run(ctx); err != nil {
			s.logger.Error("Viewer stopped", "error", err)
		}
	}()
	return nil
}

// Run starts the daemon and blocks until the HTTP server stops.
func (s *WebDaemon) Run() error {
	if err := s.Start(); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}

// Stop shuts down the HTTP server, websocket sessions and the viewer.
func (s *WebDaemon) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	s.logger.Info("Stopping web daemon")
	s.cancel()
	if s.melodyInstance != nil {
		_ = s.melodyInstance.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.wg.Wait()
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
	s.listener = nil
	return err
}

// Addr is the address the daemon is listening on, or nil before Start.
func (s *WebDaemon) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Viewer returns the embedded viewer, or nil before Start.
func (s *WebDaemon) Viewer() *viewer.Viewer {
	return s.viewer
}

// newRouter builds the HTTP routes. It does no wiring of its own;
// the websocket is only served once Start has set it up.
func (s *WebDaemon) newRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(false)
	router.Use(loggingMiddleware)

	router.Path("/ws").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.melodyInstance == nil {
			http.Error(w, "websocket not running", http.StatusServiceUnavailable)
			return
		}
		if err := s.melodyInstance.HandleRequest(w, r); err != nil {
			s.logger.Warn("Websocket upgrade failed", "error", err)
		}
	})

	apiRoutes := router.NewRoute().Subrouter()

	// All API routes use permissive CORS settings.
	apiRoutes.Use(permissiveCorsMiddleware)

	// /ping is a simple server healthcheck endpoint
	apiRoutes.Path("/ping").HandlerFunc(pingPong)

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	jsonMiddleware := contentTypeMiddlewareFunc("application/json")
	apiJSONRoutes.Use(jsonMiddleware)

	apiJSONRoutes.Path("/status").HandlerFunc(s.statusReport).Methods(http.MethodGet)
	apiJSONRoutes.Path(params.DataSourceRoute).HandlerFunc(s.handleLevelDataset).Methods(http.MethodGet)

	return router
}
