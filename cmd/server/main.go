package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sections "github.com/goliatone/go-sections"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML or JSON config file (optional)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, *configPath); err != nil {
		log.Fatalf("sections server: %v", err)
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := sections.LoadConfig(configPath)
	if err != nil {
		return err
	}

	module, err := sections.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	if err := module.Bootstrap(ctx); err != nil {
		return err
	}

	handler, err := buildHandler(module)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logger := module.Logger("server")
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "base_path", cfg.HTTP.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildHandler(module *sections.Module) (http.Handler, error) {
	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		return nil, err
	}
	container := module.Container()
	if registry := container.Registry(); registry != nil && container.Config.HTTP.MetricsPath != "" {
		mux.Handle("GET "+container.Config.HTTP.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux, nil
}
