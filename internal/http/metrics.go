package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"zapgroups-backend-go/internal/services"

	"github.com/gorilla/websocket"
)

type MetricsHistoryResponse struct {
	Items []services.MetricSample `json:"items"`
}

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestMetrics(s.DB, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, MetricsHistoryResponse{Items: items})
}

// MetricsSocket streams live samples to the admin console. Browsers cannot
// set headers on websocket dials, so the token rides in the query string.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	sess, err := s.Tokens.ParseSession(tokenStr)
	if err != nil || sess.Expired(time.Now(), s.Tokens.SessionTTL) {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !sess.IsAdmin() {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
