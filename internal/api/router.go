package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(apiHandler *APIHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", apiHandler.WelcomeHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", apiHandler.ListCategoriesHandler)
		r.Get("/categories/{categoryID}/questions", apiHandler.ListPresetQuestionsHandler)
		r.Get("/knowledge/{knowledgeID}", apiHandler.KnowledgeAnswerHandler)
		r.Post("/chat", apiHandler.ChatHandler)
		r.Get("/users/{userID}", apiHandler.GetUserHandler)
		r.Get("/debug-db-test", apiHandler.DebugDBTestHandler)
	})

	return r
}
