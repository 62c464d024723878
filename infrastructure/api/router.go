// Package api exposes the signaling surface over HTTP: auth, the call
// endpoints, history views, and the websocket upgrade for the push channel.
package api

import (
	"log/slog"
	"net/http"

	"vchat/auth"
	"vchat/projection"
	"vchat/services"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles everything the HTTP layer needs.
type RouterDeps struct {
	Log      *slog.Logger
	Tokens   *auth.TokenManager
	Auth     services.IAuthService
	Sessions services.ISessionService
	Groups   services.IGroupService
	Calls    services.ICallService
	History  *projection.History

	ConnectionBufferSize int
	MetricsRegistry      *prometheus.Registry
}

// NewRouter wires the route tree. Auth routes and /metrics live outside the
// token middleware; everything else requires an authenticated identity.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	authHandler := NewAuthHandler(deps.Log, deps.Auth)
	callHandler := NewCallHandler(deps.Log, deps.Calls, deps.History)
	groupHandler := NewGroupHandler(deps.Log, deps.Groups)
	wsHandler := NewWsHandler(deps.Log, deps.Sessions, deps.ConnectionBufferSize)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(deps.Tokens))

		r.Route("/api/calls", func(r chi.Router) {
			r.Post("/direct", callHandler.InitiateDirect)
			r.Post("/group", callHandler.InitiateGroup)
			r.Post("/join", callHandler.Join)
			r.Post("/cancel", callHandler.Cancel)
			r.Get("/history", callHandler.History)
			r.Get("/history/{code}", callHandler.HistoryByThread)
		})

		r.Route("/api/groups", func(r chi.Router) {
			r.Post("/", groupHandler.Create)
			r.Put("/{code}/members", groupHandler.UpdateMembers)
		})

		r.Get("/ws", wsHandler.Connect)
	})

	return r
}
