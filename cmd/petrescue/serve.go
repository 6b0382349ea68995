package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"PetRescue/internal/config"
	"PetRescue/internal/handlers"
	"PetRescue/internal/images"
	"PetRescue/internal/metrics"
	"PetRescue/internal/sessions"
	"PetRescue/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := store.Open(cfg.Database.Driver, cfg.Database.DSN, log)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Init(cmd.Context()); err != nil {
				return err
			}

			imgs, err := images.Open(cmd.Context(), images.Options{
				Driver: cfg.Uploads.Driver,
				Dir:    cfg.Uploads.Dir,
				Bucket: cfg.Uploads.Bucket,
				Prefix: cfg.Uploads.Prefix,
			})
			if err != nil {
				return err
			}

			sm := sessions.New(cfg.Session.Secret, cfg.Session.Secure)
			h := handlers.New(st, imgs, sm, log)
			m := metrics.New()

			r := chi.NewRouter()
			r.Use(chimw.RequestID)
			r.Use(chimw.RealIP)
			r.Use(chimw.Recoverer)
			r.Use(chimw.RedirectSlashes)
			r.Use(m.Middleware)
			r.Use(chimw.Timeout(30 * time.Second))

			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
			if d, ok := imgs.(*images.Dir); ok {
				r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.Root()))))
			}
			r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
			})
			r.Method(http.MethodGet, "/metrics", m.Handler())
			h.Routes(r)

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      r,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			log.Info("listening", zap.String("addr", cfg.Addr))

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutCtx); err != nil {
					return err
				}
				log.Info("shut down cleanly")
			}
			return nil
		},
	}
}
