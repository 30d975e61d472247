package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/phigamnu/sistergreet/internal/config"
	"github.com/phigamnu/sistergreet/internal/handler"
	"github.com/phigamnu/sistergreet/internal/handler/admin"
	"github.com/phigamnu/sistergreet/internal/model/sister"
	"github.com/phigamnu/sistergreet/internal/service/audit"
	"github.com/phigamnu/sistergreet/internal/service/imageprobe"
	"github.com/phigamnu/sistergreet/internal/service/roster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var source roster.Source
	if cfg.Roster.Seeded() {
		log.Println("SISTERS_DATA_URL not set, serving the built-in seed roster")
		source = roster.NewStaticSource(sister.Seed())
	} else {
		source = roster.NewHTTPSource(cfg.Roster.DataURL, cfg.Roster.FetchTimeout)
	}

	auditSvc := audit.NewService(cfg.Audit.Limit)
	rosterSvc := roster.NewService(source, auditSvc)

	adminHandler := admin.New(rosterSvc, auditSvc)
	rosterSvc.AddListener(adminHandler)

	prober := imageprobe.New(cfg.Probe.Timeout)

	router := handler.NewRouter(rosterSvc, prober, auditSvc, adminHandler)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sistergreet backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
