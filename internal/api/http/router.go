package http

import (
	"log/slog"
	"net/http"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/service"
	"github.com/jhoownogueira/TaskFlowAPI/internal/api/store"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/httpx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/jwtx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec  *jwtx.Codec
	store  store.Store
	logger *slog.Logger

	Sessions *service.SessionService
	Tasks    *service.TaskService
}

func NewRouter(codec *jwtx.Codec, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:    http.NewServeMux(),
		codec:  codec,
		store:  st,
		logger: logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerHealth()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Sessions: r.Sessions}

	r.Mux.HandleFunc("POST /register", h.HandleRegister)
	r.Mux.HandleFunc("POST /login", h.HandleLogin)
	r.Mux.HandleFunc("POST /refresh", h.HandleRefresh)
	r.Mux.HandleFunc("POST /logout", h.HandleLogout)
}

func (r *Router) registerTasks() {
	h := &TasksHandler{Tasks: r.Tasks}
	guard := httpx.AuthMiddleware(r.codec)

	r.Mux.Handle("GET /tasks", httpx.Chain(http.HandlerFunc(h.HandleList), guard))
	r.Mux.Handle("POST /tasks", httpx.Chain(http.HandlerFunc(h.HandleCreate), guard))
	r.Mux.Handle("PUT /tasks/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), guard))
	r.Mux.Handle("DELETE /tasks/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), guard))
}

func (r *Router) registerHealth() {
	r.Mux.Handle("GET /health", HealthHandler())
	r.Mux.Handle("GET /health/db", HealthDBHandler(r.store))
}
