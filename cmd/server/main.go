package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Tmy-andy/profile/internal/config"
	"github.com/Tmy-andy/profile/internal/handlers"
	appMiddleware "github.com/Tmy-andy/profile/internal/middleware"
	"github.com/Tmy-andy/profile/internal/services"
	"github.com/Tmy-andy/profile/internal/storage"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// Document store: Mongo when configured, file-backed JSON otherwise.
	var store storage.DocumentStore
	if cfg.MongoURI != "" {
		mongoStore, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoStore.Close(ctx)
		store = mongoStore
	} else {
		jsonStore, err := storage.NewJSONStore(cfg.DataDir, "settings.json")
		if err != nil {
			log.Fatalf("Failed to open JSON store: %v", err)
		}
		store = jsonStore
		log.Printf("No MONGO_URI set, using JSON store in %s", cfg.DataDir)
	}

	blobs := services.NewLocalBlobStore(cfg.UploadDir)
	settingsService := services.NewSettingsService(store, blobs)
	accountService := services.NewAccountService(store, blobs, settingsService)

	// Auth: Firebase ID tokens by default, locally issued JWTs otherwise.
	var authMiddleware func(http.Handler) http.Handler
	var userService *services.UserService
	if cfg.AuthMode == "firebase" {
		authClient, err := appMiddleware.NewFirebaseAuthClient(ctx, appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProject,
			CredentialsJSON: cfg.FirebaseCreds,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
		}
		authMiddleware = appMiddleware.FirebaseAuth(authClient)
	} else {
		userService = services.NewUserService()
		authMiddleware = appMiddleware.JWTAuth(cfg.JWTSecret)
	}

	// Initialize handlers
	settingsHandler := handlers.NewSettingsHandler(settingsService, userService)
	projectsHandler := handlers.NewProjectsHandler(settingsHandler)
	avatarHandler := handlers.NewAvatarHandler(settingsHandler, cfg.MaxUploadSizeMB)
	accountHandler := handlers.NewAccountHandler(accountService, userService)
	authHandler := handlers.NewAuthHandler(userService, settingsService, cfg.JWTSecret, cfg.JWTExpiration)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		if userService != nil {
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.GetSettings)
				r.Post("/save", settingsHandler.SaveAll)

				r.Route("/profile", func(r chi.Router) {
					r.Put("/", settingsHandler.UpdateProfile)
					r.Post("/save", settingsHandler.SaveProfile)
					r.Post("/avatar", avatarHandler.Upload)
					r.Delete("/avatar", settingsHandler.ClearAvatar)
				})

				r.Route("/skills", func(r chi.Router) {
					r.Get("/", settingsHandler.GetSkills)
					r.Post("/", settingsHandler.AddSkill)
					r.Delete("/", settingsHandler.ClearSkills)
					r.Delete("/{skill}", settingsHandler.RemoveSkill)
					r.Post("/save", settingsHandler.SaveSkills)
				})

				r.Route("/projects", func(r chi.Router) {
					r.Get("/", projectsHandler.ListProjects)
					r.Post("/", projectsHandler.AddProject)
					r.Post("/save", projectsHandler.SaveProjects)

					r.Route("/{projectIndex}", func(r chi.Router) {
						r.Put("/", projectsHandler.UpdateProject)
						r.Delete("/", projectsHandler.DeleteProject)
						r.Post("/toggle", projectsHandler.ToggleProject)
						r.Post("/save", projectsHandler.SaveProject)

						r.Post("/uploads", projectsHandler.AddUpload)
						r.Put("/uploads/{uploadIndex}", projectsHandler.UpdateUpload)
						r.Delete("/uploads/{uploadIndex}", projectsHandler.DeleteUpload)
					})
				})

				r.Route("/notifications", func(r chi.Router) {
					r.Put("/", settingsHandler.UpdateNotifications)
					r.Post("/save", settingsHandler.SaveNotifications)
				})

				r.Post("/security/save", settingsHandler.SaveSecurity)
			})

			r.Get("/toasts", settingsHandler.ListToasts)
			r.Get("/connections", settingsHandler.ListConnections)
			r.Delete("/account", accountHandler.DeleteAccount)
		})
	})

	// Serve uploaded files
	workDir, _ := os.Getwd()
	filesDir := http.Dir(workDir + "/" + cfg.UploadDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesDir)))

	log.Printf("Profile settings API listening on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
