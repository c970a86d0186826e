// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	redirects "github.com/lightningspirit/wp-redirects"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the redirect engine over HTTP",
		Long: "Serve the redirect engine over HTTP. Requests are resolved against the rule store " +
			"and unmatched paths fall through to a 404. The rule collection is managed at /api/rules.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Listen = listen
			}

			resolver, err := clientIPResolver(a.cfg)
			if err != nil {
				return err
			}

			store, err := a.store()
			if err != nil {
				return err
			}

			handler, err := redirects.NewHandler(store, nil, redirects.WithLogHandler(a.log.Handler()))
			if err != nil {
				return err
			}
			adminOpts := []redirects.AdminOption{redirects.WithLogHandler(a.log.Handler())}
			if a.cfg.Token != "" {
				adminOpts = append(adminOpts, redirects.WithToken(a.cfg.Token))
			}
			admin, err := redirects.NewAdminHandler(store, adminOpts...)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle("/api/rules", admin)
			mux.Handle("/", handler)

			chain := redirects.Recovery(redirects.DefaultHandleRecovery)(
				redirects.LoggerWithResolver(a.log.Handler(), resolver)(mux),
			)

			srv := &http.Server{
				Addr:              a.cfg.Listen,
				Handler:           chain,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- srv.ListenAndServe()
			}()

			a.log.LogAttrs(ctx, slog.LevelInfo, "listening",
				slog.String("addr", a.cfg.Listen),
				slog.String("rules", store.Path()),
			)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			stop()
			a.log.LogAttrs(context.Background(), slog.LevelInfo, "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (overrides the configuration)")
	return cmd
}

// clientIPResolver picks the access log IP resolver for the configuration.
// Proxy-derived resolvers fall back to the socket address so direct
// connections keep logging a usable IP.
func clientIPResolver(cfg Config) (redirects.ClientIPResolver, error) {
	switch {
	case cfg.RealIPHeader != "":
		if http.CanonicalHeaderKey(cfg.RealIPHeader) == redirects.HeaderXForwardedFor {
			return nil, fmt.Errorf("%w: real_ip_header must name a single-ip header, use trusted_proxies for %s",
				redirects.ErrInvalidConfig, redirects.HeaderXForwardedFor)
		}
		return redirects.NewChain(redirects.NewSingleIPHeader(cfg.RealIPHeader), redirects.NewRemoteAddr()), nil
	case cfg.TrustedProxies > 0:
		return redirects.NewChain(redirects.NewRightmostTrustedCount(cfg.TrustedProxies), redirects.NewRemoteAddr()), nil
	default:
		return redirects.NewRemoteAddr(), nil
	}
}
