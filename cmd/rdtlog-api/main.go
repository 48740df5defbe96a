// @title         rdtlog API
// @version       v1
// @description   Replays longwave time-signal receiver logs

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rdtlog/internal/core/version"
	"rdtlog/internal/platform/config"
	"rdtlog/internal/platform/logger"
	phttp "rdtlog/internal/platform/net/http"

	"rdtlog/internal/services/api"
)

func main() {
	root := config.New()
	l := logger.Named("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads API_PORT and API_*_TIMEOUT)
	srv := phttp.NewServer(root)

	opt := api.OptionsFromConfig(root)
	opt.Logger = l
	api.Mount(srv.Router(), opt)

	l.Info().Str("addr", srv.Addr()).Str("build", version.Info("rdtlog-api").String()).Msg("http server starting")
	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server drained")
}
