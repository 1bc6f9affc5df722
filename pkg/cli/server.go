package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/torplabs/torp/pkg/logging"
	"github.com/torplabs/torp/pkg/scoring"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen",
		Value:    serverPortDefault,
		Required: false,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP scoring API",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			debugFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)

	level := cfg.Conf.LogLevel
	if cfg.Debug || c.Bool(debugFlag.Name) {
		level = "debug"
	}
	slog.SetDefault(logging.NewServerLogger(level))

	port := c.Int(portFlag.Name)
	address := fmt.Sprintf("127.0.0.1:%d", port)

	mux := makeRouter(cfg.Engine, cfg.DB, cfg.Conf.Workers)
	s := &http.Server{
		Addr:           address,
		Handler:        mux,
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", fmt.Sprintf("http://%s", address))

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

func makeRouter(e *scoring.Engine, db *sql.DB, workers int) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthAPIHandler(db))
	mux.Handle("GET /metrics", promhttp.Handler())

	// Scoring API
	mux.HandleFunc("POST /data/analyze", analyzeAPIHandler(e, db))
	mux.HandleFunc("GET /data/analyses", analysesAPIHandler(db))
	mux.HandleFunc("GET /data/analyses/{id}", analysisAPIHandler(db))
	mux.HandleFunc("GET /data/scenarios", scenariosAPIHandler(e, workers))

	// Stats API
	mux.HandleFunc("GET /data/stats/grades", gradeStatsAPIHandler(db))
	mux.HandleFunc("GET /data/stats/flags", flagStatsAPIHandler(db))
	mux.HandleFunc("GET /data/stats/summary", summaryAPIHandler(db))

	return mux
}
