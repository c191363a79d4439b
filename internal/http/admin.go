package httpapi

import (
	"net/http"
	"time"

	"zapgroups-backend-go/internal/services"
)

// AdminGroups is the full moderation table, pending rows included, in
// store-return order.
func (s *Server) AdminGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := services.ListAllGroups(r.Context(), s.Store)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]GroupDTO{"groups": buildGroupDTOs(groups, time.Now())})
}

// AdminToggleStatus flips a listing between approved and pending.
func (s *Server) AdminToggleStatus(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchGroupParam(w, r)
	if !ok {
		return
	}
	updated, err := services.ToggleApproval(r.Context(), s.Store, group)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildGroupDTO(updated, time.Now()))
}

func (s *Server) AdminDeleteGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchGroupParam(w, r)
	if !ok {
		return
	}
	if err := services.DeleteGroup(r.Context(), s.Store, group.ID); err != nil {
		writeRemoteFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) AdminReports(w http.ResponseWriter, r *http.Request) {
	reports, err := services.ListReports(r.Context(), s.Store)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]ReportDTO{"reports": buildReportDTOs(reports)})
}
