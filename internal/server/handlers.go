package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"TrendSentinel/internal/agent"
	"TrendSentinel/internal/store"
)

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is returned for every chat exchange, including guidance
// replies for unknown or not-yet-implemented tasks.
type ChatResponse struct {
	SessionID   string `json:"session_id"`
	ReplyText   string `json:"reply_text"`
	ReportID    string `json:"report_id,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// ChatHandler dispatches chat messages through the agent router.
type ChatHandler struct {
	router *agent.Router
}

func NewChatHandler(router *agent.Router) *ChatHandler {
	return &ChatHandler{router: router}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required", nil)
		return
	}

	log.Printf("[INFO] chat request: %.50s", req.Message)
	result := h.router.Route(r.Context(), req.SessionID, req.Message)

	resp := ChatResponse{
		SessionID: result.SessionID,
		ReplyText: result.ReplyText,
		ReportID:  result.ReportID,
	}
	if result.ReportID != "" {
		resp.DownloadURL = "/api/report/" + result.ReportID
	}

	// Unknown-task and not-implemented outcomes still return 200 with
	// guidance text, matching the conversational contract.
	respondWithJSON(w, http.StatusOK, resp)
}

// ReportHandler serves rendered report files.
type ReportHandler struct {
	store store.Store
}

func NewReportHandler(st store.Store) *ReportHandler {
	return &ReportHandler{store: st}
}

func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetAnalysis(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to look up report", err)
		return
	}
	if rec == nil || rec.ReportPath == "" {
		respondWithError(w, http.StatusNotFound, "report not found", nil)
		return
	}
	if _, err := os.Stat(rec.ReportPath); err != nil {
		respondWithError(w, http.StatusNotFound, "report file missing", err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_trend_report.md"`, rec.Keyword))
	http.ServeFile(w, r, rec.ReportPath)
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func respondWithError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("[ERROR] %s: %v", message, err)
	}
	respondWithJSON(w, status, map[string]string{"error": message})
}
