package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/helpdesk14/helpdesk/internal/api/handler"
	"github.com/helpdesk14/helpdesk/internal/api/middleware"
	"github.com/helpdesk14/helpdesk/internal/auth"
	"github.com/helpdesk14/helpdesk/internal/authz"
	"github.com/helpdesk14/helpdesk/internal/ticket"
	"github.com/helpdesk14/helpdesk/internal/user"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthService *auth.Service
	Resolver    *auth.Resolver
	Hasher      *auth.Hasher
	UserRepo    user.Repository
	TicketRepo  ticket.Repository
	DBPinger    handler.DBPinger
	Version     string
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Every route under /users and /tickets requires a valid bearer
// token; the user routes and ticket mutations additionally require the TECH
// role.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.UserRepo, deps.Hasher)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
	})

	userHandler := handler.NewUserHandler(deps.UserRepo, deps.Hasher)
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Resolver))
		r.Use(middleware.Require(authz.OpUserManage))
		r.Get("/", userHandler.List)
		r.Get("/email/{email}", userHandler.GetByEmail)
		r.Post("/", userHandler.Create)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	ticketHandler := handler.NewTicketHandler(deps.TicketRepo, deps.UserRepo)
	r.Route("/tickets", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Resolver))
		r.With(middleware.Require(authz.OpTicketCreate)).Post("/", ticketHandler.Create)
		r.Get("/", ticketHandler.List)
		r.Get("/{id}", ticketHandler.GetByID)
		r.With(middleware.Require(authz.OpTicketUpdate)).Put("/{id}", ticketHandler.Update)
		r.With(middleware.Require(authz.OpTicketDelete)).Delete("/{id}", ticketHandler.Delete)
	})

	return r
}
