package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/ranking"
	"zapgroups-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type ListingResponse struct {
	Boosted []GroupDTO `json:"boosted"`
	Normal  []GroupDTO `json:"normal"`
}

type ClickResponse struct {
	InviteLink string `json:"inviteLink"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type VisitRequest struct {
	Path     *string `json:"path"`
	Referrer *string `json:"referrer"`
}

type VisitCountResponse struct {
	Total int `json:"total"`
}

// PublicGroups renders the home page listing: approved groups fetched from
// the store, then ranked into the boosted and normal sections.
func (s *Server) PublicGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := services.ListApprovedGroups(r.Context(), s.Store)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	query := r.URL.Query().Get("q")
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = ranking.CategoryAll
	}
	now := time.Now()
	result := ranking.Rank(groups, query, category, now)
	WriteJSON(w, http.StatusOK, ListingResponse{
		Boosted: buildGroupDTOs(result.Boosted, now),
		Normal:  buildGroupDTOs(result.Normal, now),
	})
}

func (s *Server) PublicGroupDetail(w http.ResponseWriter, r *http.Request) {
	groupID, err := services.SlugID(chi.URLParam(r, "slug"))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	group, err := services.GetGroup(r.Context(), s.Store, groupID)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	if group.Status != models.StatusApproved {
		WriteError(w, http.StatusNotFound, "Group not found")
		return
	}
	WriteJSON(w, http.StatusOK, buildGroupDTO(group, time.Now()))
}

// RecordClick bumps the join counter and hands back the invite link. The
// link is returned even when the increment fails; joining must never block
// on analytics.
func (s *Server) RecordClick(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchGroupParam(w, r)
	if !ok {
		return
	}
	if err := services.IncrementClicks(r.Context(), s.Store, group); err != nil {
		log.Printf("click increment failed for group %d: %v", group.ID, err)
	}
	WriteJSON(w, http.StatusOK, ClickResponse{InviteLink: group.InviteLink})
}

func (s *Server) ReportGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchGroupParam(w, r)
	if !ok {
		return
	}
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if _, err := services.CreateReport(r.Context(), s.Store, group, req.Reason); err != nil {
		writeRemoteFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]string{"categories": services.Categories})
}

func (s *Server) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	ip := resolveClientIP(r)
	ua := trimString(r.Header.Get("User-Agent"), 512)
	path := trimString(derefString(req.Path), 255)
	ref := trimString(derefString(req.Referrer), 512)
	if err := services.TrackVisit(s.DB, ip, ua, path, ref); err != nil {
		log.Printf("visit tracking failed: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) VisitCount(w http.ResponseWriter, r *http.Request) {
	total, err := services.CountVisits(s.DB)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, VisitCountResponse{Total: total})
}

// fetchGroupParam resolves the {groupId} route parameter to a store row,
// writing the error response itself on failure.
func (s *Server) fetchGroupParam(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil || groupID <= 0 {
		WriteError(w, http.StatusNotFound, "Group not found")
		return models.Group{}, false
	}
	group, err := services.GetGroup(r.Context(), s.Store, groupID)
	if err != nil {
		writeRemoteFailure(w, err)
		return models.Group{}, false
	}
	return group, true
}

func resolveClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return r.RemoteAddr
}

func trimString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
