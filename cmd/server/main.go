package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"plotgrid.dev/internal/captions"
	"plotgrid.dev/internal/manage"
	"plotgrid.dev/internal/notify"
	"plotgrid.dev/internal/persistence/journal"
	"plotgrid.dev/internal/persistence/plotdb"
	"plotgrid.dev/internal/transport/ws"
	"plotgrid.dev/internal/worldcfg"
)

func main() {
	var (
		addr         = flag.String("addr", ":8080", "http listen address")
		dataDir      = flag.String("data", "./data", "runtime data directory")
		worldsPath   = flag.String("worlds", "", "per-world plot config path (default: built-in worlds)")
		captionsPath = flag.String("captions", "", "caption overrides path (optional)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := worldcfg.Load(*worldsPath)
	if err != nil {
		logger.Fatalf("load worlds config: %v", err)
	}
	cat, err := captions.Load(*captionsPath)
	if err != nil {
		logger.Fatalf("load captions: %v", err)
	}

	store, err := plotdb.Open(filepath.Join(*dataDir, "plots.db"))
	if err != nil {
		logger.Fatalf("open plot store: %v", err)
	}
	defer store.Close()

	opJournal := journal.NewOpJournal(*dataDir)
	defer opJournal.Close()

	chat := ws.NewServer(log.New(os.Stdout, "[ws] ", log.LstdFlags|log.Lmicroseconds))
	notifier := notify.New(cat, chat, opJournal)

	host := &sessionHost{cfg: &cfg, presence: chat}
	mgr := manage.New(&cfg, store, host, notifier, manage.Options{Auditor: opJournal})

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", chat.Handler())
	mux.HandleFunc("/v1/plots/merge", mergeHandler(mgr))
	mux.HandleFunc("/v1/plots/clear", clearHandler(mgr))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// sessionHost adapts the chat transport and config into the host
// interface. Location and quota come from the embedding game server in
// a full deployment; this standalone binary serves presence and chat
// delivery only.
type sessionHost struct {
	cfg      *worldcfg.Config
	presence *ws.Server
}

func (h *sessionHost) CurrentWorld(playerID string) string { return h.cfg.DefaultWorld }

func (h *sessionHost) CurrentLocation(playerID string) (int, int, bool) { return 0, 0, false }

func (h *sessionHost) IsOnline(playerID string) bool { return h.presence.Online(playerID) }

func (h *sessionHost) AllowedQuota(playerID, baseKey string, defaultMax int) int {
	return defaultMax
}

func (h *sessionHost) DisplayName(playerID string) (string, bool) { return "", false }
