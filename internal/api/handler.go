// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skillpulse/internal/auth"
	"skillpulse/internal/feedback"
	"skillpulse/internal/languages"
	"skillpulse/internal/model"
	"skillpulse/internal/store"
)

type contextKey string

const userIDKey contextKey = "user_id"

// SyncService triggers a repository snapshot sync.
type SyncService interface {
	Sync(ctx context.Context, userID, githubToken string) (int, error)
}

// AssistantService is the set of interaction surfaces exposed over HTTP.
type AssistantService interface {
	Ask(ctx context.Context, userID, query string) (string, error)
	InterviewQuestions(ctx context.Context, userID string) (string, error)
	ProjectIdeas(ctx context.Context, userID string) (string, error)
	MockInterview(ctx context.Context, userID string, turns []model.Turn) (string, error)
	CodeReview(ctx context.Context, userID string) (string, []feedback.Item, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	syncer    SyncService
	assistant AssistantService
	store     store.Store
	verifier  auth.Verifier
	logger    *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(sync SyncService, asst AssistantService, st store.Store, verifier auth.Verifier, logger *slog.Logger) http.Handler {
	h := &Handler{
		syncer:    sync,
		assistant: asst,
		store:     st,
		verifier:  verifier,
		logger:    logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Post("/github/sync", h.syncRepositories)
		r.Get("/repositories", h.listRepositories)
		r.Get("/languages/top", h.topLanguages)
		r.Route("/assistant", func(r chi.Router) {
			r.Post("/query", h.query)
			r.Post("/interview-questions", h.interviewQuestions)
			r.Post("/project-ideas", h.projectIdeas)
			r.Post("/mock-interview", h.mockInterview)
			r.Post("/code-review", h.codeReview)
		})
	})

	return r
}

// authenticate resolves the bearer session token to a user ID and stores it
// on the request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			respondWithError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := h.verifier.Verify(r.Context(), token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// syncRepositories triggers a GitHub snapshot sync for the current user.
// POST /v1/github/sync
func (h *Handler) syncRepositories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GithubAccessToken string `json:"github_access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.syncer.Sync(r.Context(), userID(r), req.GithubAccessToken)
	if err != nil {
		h.logger.Error("Repository sync failed", "user_id", userID(r), "error", err)
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   count,
		"message": fmt.Sprintf("Successfully synced %d repositories", count),
	})
}

// query answers a free-form question grounded on the stored snapshot.
// POST /v1/assistant/query
func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.assistant.Ask(r.Context(), userID(r), req.Query)
	if err != nil {
		h.logger.Error("Assistant query failed", "user_id", userID(r), "error", err)
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// POST /v1/assistant/interview-questions
func (h *Handler) interviewQuestions(w http.ResponseWriter, r *http.Request) {
	h.fixedSurface(w, r, h.assistant.InterviewQuestions)
}

// POST /v1/assistant/project-ideas
func (h *Handler) projectIdeas(w http.ResponseWriter, r *http.Request) {
	h.fixedSurface(w, r, h.assistant.ProjectIdeas)
}

func (h *Handler) fixedSurface(w http.ResponseWriter, r *http.Request, surface func(context.Context, string) (string, error)) {
	answer, err := surface(r.Context(), userID(r))
	if err != nil {
		h.logger.Error("Assistant surface failed", "user_id", userID(r), "error", err)
		respondWithError(w, statusFor(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// mockInterview advances an interview; the client re-sends the full turn
// history on every call.
// POST /v1/assistant/mock-interview
func (h *Handler) mockInterview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Turns []model.Turn `json:"turns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.assistant.MockInterview(r.Context(), userID(r), req.Turns)
	if err != nil {
		h.logger.Error("Mock interview failed", "user_id", userID(r), "error", err)
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// codeReview returns the raw review plus classified feedback items.
// POST /v1/assistant/code-review
func (h *Handler) codeReview(w http.ResponseWriter, r *http.Request) {
	answer, items, err := h.assistant.CodeReview(r.Context(), userID(r))
	if err != nil {
		h.logger.Error("Code review failed", "user_id", userID(r), "error", err)
		respondWithError(w, statusFor(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"answer":   answer,
		"feedback": items,
	})
}

// listRepositories returns the user's stored snapshot.
// GET /v1/repositories
func (h *Handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := h.store.ListRepositories(r.Context(), userID(r))
	if err != nil {
		h.logger.Error("Failed to list repositories", "user_id", userID(r), "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if repos == nil {
		repos = []model.Repository{}
	}
	respondWithJSON(w, http.StatusOK, repos)
}

// topLanguages returns the ranked language frequency table for the UI.
// GET /v1/languages/top?limit=N
func (h *Handler) topLanguages(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "6" // Default limit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 20 {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 20.")
		return
	}

	repos, err := h.store.ListRepositories(r.Context(), userID(r))
	if err != nil {
		h.logger.Error("Failed to list repositories", "user_id", userID(r), "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	repoLangs := make([]map[string]int, len(repos))
	for i, repo := range repos {
		repoLangs[i] = repo.Languages
	}
	top := languages.Top(repoLangs, limit)
	if top == nil {
		top = []languages.Entry{}
	}

	respondWithJSON(w, http.StatusOK, top)
}
