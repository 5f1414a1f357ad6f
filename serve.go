package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/Cherry/wildebeest/internal/group"
	"github.com/Cherry/wildebeest/internal/httpx"
	"github.com/Cherry/wildebeest/mastodon"
	"github.com/Cherry/wildebeest/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
	"gorm.io/gorm"
)

type ServeCmd struct {
	Addr string `help:"address to listen" default:":8080"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	db, err := ctx.openDB()
	if err != nil {
		return err
	}

	svr := &http.Server{
		Addr:         s.Addr,
		Handler:      newRouter(db, ctx.Logger),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	g := group.New(context.Background())
	g.AddServer(svr, 10*time.Second)
	g.AddSignals(func(sig os.Signal) {
		ctx.Logger.Info("shutting down", "signal", sig)
	}, os.Interrupt, syscall.SIGTERM)
	ctx.Logger.Info("listening", "addr", s.Addr)
	return g.Wait()
}

func newRouter(db *gorm.DB, log *slog.Logger) http.Handler {
	envFn := func(r *http.Request) *mastodon.Env {
		return &mastodon.Env{
			Env: &models.Env{
				DB:     db.WithContext(r.Context()),
				Logger: log,
			},
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(httpx.CORS)
	r.Use(middleware.Recoverer)

	r.NotFound(httpx.ErrorHandler(log, http.StatusNotFound, errors.New("Not found")))
	r.MethodNotAllowed(httpx.ErrorHandler(log, http.StatusBadRequest, errors.New("Method not allowed")))

	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// apps can only be created, AppsCreate rejects every other method.
			r.HandleFunc("/apps", httpx.HandlerFunc(envFn, mastodon.AppsCreate))
			r.Get("/apps/verify_credentials", httpx.HandlerFunc(envFn, mastodon.AppsVerifyCredentials))
			r.With(httpx.CacheControl(5*time.Minute)).Get("/custom_emojis", httpx.HandlerFunc(envFn, mastodon.EmojisIndex))
			r.Get("/instance", httpx.HandlerFunc(envFn, mastodon.InstancesIndexV1))
			r.Get("/push/subscription", httpx.HandlerFunc(envFn, mastodon.PushSubscriptionShow))
			r.Post("/push/subscription", httpx.HandlerFunc(envFn, mastodon.PushSubscriptionCreate))
			r.Put("/push/subscription", httpx.HandlerFunc(envFn, mastodon.PushSubscriptionUpdate))
			r.Delete("/push/subscription", httpx.HandlerFunc(envFn, mastodon.PushSubscriptionDestroy))
		})
		r.Route("/v2", func(r chi.Router) {
			r.Get("/instance", httpx.HandlerFunc(envFn, mastodon.InstancesIndexV2))
		})
	})
	return r
}
