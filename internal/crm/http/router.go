package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/httpx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

// Config carries the HTTP-facing settings the router needs.
type Config struct {
	// AllowedOrigins is the CORS allow-list for the browser frontend.
	AllowedOrigins []string
	// SecureCookies switches the session cookie to SameSite=None + Secure,
	// required when the frontend is served from a different origin over HTTPS.
	SecureCookies bool
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger  *slog.Logger
	cookies cookieSettings
	store   store.Store

	AuthService     *service.AuthService
	UserService     *service.UserService
	CustomerService *service.CustomerService
	DealService     *service.DealService
}

func NewRouter(cfg Config, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:     http.NewServeMux(),
		logger:  logger,
		cookies: cookieSettings{Secure: cfg.SecureCookies},
		store:   st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCustomers()
	r.registerDeals()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with session authentication and a per-user rate limit.
func (r *Router) secured(h http.Handler) http.Handler {
	return httpx.Chain(h,
		SessionMiddleware(r.AuthService),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

func (r *Router) registerAuth() {
	// POST /api/register - strict rate limit by IP (account creation)
	registerHandler := &RegisterHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /api/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/login - strict rate limit by IP (brute force prevention)
	loginHandler := &LoginHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /api/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/logout - succeeds with or without a session
	logoutHandler := &LogoutHandler{AuthService: r.AuthService, Cookies: r.cookies}
	r.Mux.Handle("POST /api/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /api/me", r.secured(meHandler))
}

func (r *Router) registerCustomers() {
	h := &CustomersHandler{CustomerService: r.CustomerService}

	r.Mux.Handle("GET /api/customers", r.secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /api/customers", r.secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /api/customers/{id}", r.secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /api/customers/{id}", r.secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerDeals() {
	h := &DealsHandler{DealService: r.DealService}

	r.Mux.Handle("GET /api/deals", r.secured(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /api/deals", r.secured(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /api/deals/{id}", r.secured(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /api/deals/{id}", r.secured(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	// Health check endpoint - high limit (monitoring systems may poll frequently)
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
