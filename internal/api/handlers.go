package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"protos.app/smartlife-api/internal/core"
	"protos.app/smartlife-api/internal/store"
	"protos.app/smartlife-api/pkg/log"
)

type APIHandler struct {
	store     store.Store
	assistant *core.AssistantService
}

func NewAPIHandler(st store.Store, assistant *core.AssistantService) *APIHandler {
	return &APIHandler{store: st, assistant: assistant}
}

// Every endpoint answers 200 with a JSON body; failures carry an "error"
// field instead of an HTTP error status, and the client branches on its
// presence.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, format string, args ...interface{}) {
	writeJSON(w, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func (h *APIHandler) WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "Welcome to the Protos smart-life assistant API!"})
}

func (h *APIHandler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories()
	if err != nil {
		log.Error("failed to list categories", err)
		writeError(w, "failed to load categories: %v", err)
		return
	}
	writeJSON(w, map[string]interface{}{"categories": categories})
}

func (h *APIHandler) ListPresetQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	questions, err := h.store.ListPresetQuestions(categoryID)
	if err != nil {
		log.Error("failed to list preset questions", err)
		writeError(w, "failed to load preset questions: %v", err)
		return
	}
	writeJSON(w, map[string]interface{}{"preset_questions": questions})
}

func (h *APIHandler) KnowledgeAnswerHandler(w http.ResponseWriter, r *http.Request) {
	knowledgeID, err := strconv.ParseInt(chi.URLParam(r, "knowledgeID"), 10, 64)
	if err != nil {
		writeError(w, "knowledge id must be an integer")
		return
	}
	userID := r.URL.Query().Get("user_id")

	answer, err := h.assistant.AnswerFromKnowledge(knowledgeID, userID)
	if err != nil {
		log.Error("failed to generate knowledge answer", err)
		writeError(w, "failed to generate answer: %v", err)
		return
	}
	writeJSON(w, map[string]string{"ai_response": answer})
}

type HistoryItem struct {
	Role  string   `json:"role"`
	Parts []string `json:"parts"`
}

type ChatRequest struct {
	History []HistoryItem `json:"history"`
	Prompt  string        `json:"prompt"`
	UserID  string        `json:"user_id"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body: %v", err)
		return
	}
	if req.Prompt == "" {
		writeError(w, "prompt cannot be empty")
		return
	}

	history := make([]core.ChatTurn, len(req.History))
	for i, item := range req.History {
		history[i] = core.ChatTurn{
			Role: item.Role,
			Text: strings.Join(item.Parts, "\n"),
		}
	}

	answer, err := h.assistant.AnswerFromChat(history, req.Prompt, req.UserID)
	if err != nil {
		log.Error("failed to generate chat answer", err)
		writeError(w, "failed to generate answer: %v", err)
		return
	}
	writeJSON(w, map[string]string{"ai_response": answer})
}

func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	name, err := h.store.GetUserName(userID)
	if err != nil {
		log.Error("failed to resolve user name", err)
		writeError(w, "failed to load user: %v", err)
		return
	}
	writeJSON(w, map[string]string{"user_name": name})
}

// DebugDBTestHandler verifies database connectivity end to end by counting
// seeded categories.
func (h *APIHandler) DebugDBTestHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CategoryCount()
	if err != nil {
		log.Error("debug db test failed", err)
		writeError(w, "debug db test failed: %v", err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"message":        "database connection is healthy",
		"category_count": count,
	})
}
