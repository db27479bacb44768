package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/coreybb/voxvite/config"
	"github.com/coreybb/voxvite/datastore"
	rh "github.com/coreybb/voxvite/route-handlers"
	"github.com/coreybb/voxvite/webutil"
)

const (
	apiBasePath = "/api"

	registerPath     = "/register"
	loginPath        = "/login"
	uploadAudioPath  = "/upload-audio"
	generateLinkPath = "/generate-link"
	invitesPath      = "/invites"
	getLinkPath      = "/get-link"
	respondPath      = "/respond"

	uploadsBasePath = "/uploads"
)

func SetupRoutes(
	cfg config.Config,
	sessions *datastore.SessionRegistry,
	authHandler *rh.AuthHandler,
	uploadHandler *rh.UploadHandler,
	inviteHandler *rh.InviteHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log every request
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set a timeout context for requests

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by browsers
	}))

	r.Route(apiBasePath, func(r chi.Router) {
		configurePublicRoutes(r, cfg, authHandler, inviteHandler)
		configureProtectedRoutes(r, cfg, sessions, uploadHandler, inviteHandler)
	})

	configureStaticRoutes(r, cfg)

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	return r
}

// --- Public API Routes ---
func configurePublicRoutes(r chi.Router, cfg config.Config, authHandler *rh.AuthHandler, inviteHandler *rh.InviteHandler) {
	r.Group(func(r chi.Router) {
		r.Use(LimitRequestBody(cfg.MaxJSONBytes))

		r.Post(registerPath, webutil.MakeHandler(authHandler.HandleRegister))
		r.Post(loginPath, webutil.MakeHandler(authHandler.HandleLogin))
		r.Post(respondPath, webutil.MakeHandler(inviteHandler.HandleRespond))
	})
	r.Get(getLinkPath, webutil.MakeHandler(inviteHandler.HandleGetLink))
}

// --- Protected API Routes ---
func configureProtectedRoutes(r chi.Router, cfg config.Config, sessions *datastore.SessionRegistry, uploadHandler *rh.UploadHandler, inviteHandler *rh.InviteHandler) {
	r.Group(func(r chi.Router) {
		r.Use(rh.RequireAuth(sessions))

		r.Post(uploadAudioPath, webutil.MakeHandler(uploadHandler.HandleUploadAudio))
		r.Get(invitesPath, webutil.MakeHandler(inviteHandler.HandleListInvites))

		r.Group(func(r chi.Router) {
			r.Use(LimitRequestBody(cfg.MaxJSONBytes))
			r.Post(generateLinkPath, webutil.MakeHandler(inviteHandler.HandleGenerateLink))
		})
	})
}

// --- Static Entry Points ---
// The HTML pages are opaque assets; routing only has to put the right
// file behind each path and expose uploaded audio.
func configureStaticRoutes(r chi.Router, cfg config.Config) {
	servePage := func(name string) http.HandlerFunc {
		page := filepath.Join(cfg.StaticDir, name)
		return func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, page)
		}
	}

	r.Get("/", servePage("index.html"))
	r.Get("/register", servePage("register.html"))
	r.Get("/dashboard", servePage("dashboard.html"))
	r.Get("/date.html", servePage("date.html"))

	uploadsServer := http.StripPrefix(uploadsBasePath+"/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get(uploadsBasePath+"/*", uploadsServer.ServeHTTP)
}

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
