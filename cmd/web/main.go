// cmd/web/main.go
//
// Adept theme – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. app.Open – config, logger, store, theme manager.
//
//  2. Boot the activated theme (store value, else theme.default).
//
//  3. Build the chi router: home view, theme list, theme assets,
//     /metrics, /healthz.  HTTPS redirection when http.force_https is set.
//
//  4. Serve until SIGINT/SIGTERM, then drain for up to 10 s.
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

	"github.com/AdeptTravel/adept-theme/internal/app"
	"github.com/AdeptTravel/adept-theme/internal/logger"
	"github.com/AdeptTravel/adept-theme/internal/server"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, app.Options{Tee: logger.RunningInTTY()})
	if err != nil {
		log.Fatalf("boot: %v", err)
	}
	defer a.Close()

	if err := a.Manager.Boot(ctx, a.Config.Theme.Default); err != nil {
		a.Log.Fatalw("boot theme", "err", err)
	}
	a.Log.Infow("theme active", "theme", a.Manager.Current())

	srv := server.New(a.Config.HTTP.ListenAddr, server.Router(a.Config, a.Manager))

	errCh := make(chan error, 1)
	go func() {
		a.Log.Infow("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.Log.Errorw("http server", "err", err)
		}
	case <-ctx.Done():
		a.Log.Infow("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			a.Log.Errorw("shutdown", "err", err)
		}
	}
}
