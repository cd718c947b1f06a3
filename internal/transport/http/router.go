package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

// Deps carries everything the REST surface needs. The router owns the
// responder and the auth guard so callers wire usecases only.
type Deps struct {
	Signup  usecase.SignupHandler
	Login   usecase.LoginHandler
	Refresh usecase.RefreshHandler
	Logout  usecase.LogoutHandler
	Profile usecase.ProfileHandler

	Designs *usecase.DesignService
	Images  *usecase.ImageService
	Files   *usecase.FileService

	TokenManager *auth.TokenManager
	Users        mongo.UserRepository

	Log            *logger.Logger
	DevMode        bool
	MaxUploadBytes int64
	// FileOrigins is the allow-list for the public file route; unlike the
	// API surface it is served to browsers directly, so it gets its own
	// stricter CORS policy.
	FileOrigins []string
}

func NewRouter(d Deps) http.Handler {
	rp := &responder{devMode: d.DevMode}
	h := &Handler{
		signup:    d.Signup,
		login:     d.Login,
		refresh:   d.Refresh,
		logout:    d.Logout,
		profile:   d.Profile,
		designs:   d.Designs,
		images:    d.Images,
		files:     d.Files,
		rp:        rp,
		maxUpload: d.MaxUploadBytes,
		log:       d.Log.Named("http"),
	}
	guard := NewGuard(d.TokenManager, d.Users, rp, d.Log)

	r := chi.NewRouter()

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)

		r.Get("/api/user/profile", h.Profile)

		r.Route("/api/designs", func(r chi.Router) {
			r.Post("/", h.CreateDesign)
			r.Get("/", h.ListDesigns)
			r.Delete("/bulk-delete", h.BulkDeleteDesigns)
			r.Get("/{designID}", h.GetDesign)
			r.Put("/{designID}", h.UpdateDesign)
			r.Delete("/{designID}", h.DeleteDesign)
		})

		r.Route("/api/images", func(r chi.Router) {
			r.Post("/", h.SaveImage)
			r.Get("/", h.ListImages)
			r.Delete("/bulk-delete", h.BulkDeleteImages)
			r.Get("/{imageID}", h.GetImage)
		})

		r.Post("/api/uploads", h.UploadFile)
	})

	fileCORS := cors.Handler(cors.Options{
		AllowedOrigins: d.FileOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		MaxAge:         300,
	})
	r.With(fileCORS).Get("/api/uploads/file/{fileID}", h.ServeFile)

	return r
}
