package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/services"
)

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	user, err := services.GetUser(r.Context(), s.Store, sess.UserID)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]*UserDTO{"user": buildUserDTO(user)})
}

// MyGroups is the owner dashboard: every listing of the caller, pending
// included, with the boost state evaluated for the boost button.
func (s *Server) MyGroups(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	groups, err := services.ListGroupsByOwner(r.Context(), s.Store, sess.UserID)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]GroupDTO{"groups": buildGroupDTOs(groups, time.Now())})
}

func (s *Server) CreateGroup(w http.ResponseWriter, r *http.Request) {
	sess := CurrentSession(r)
	var form services.GroupForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	group, err := services.CreateGroup(r.Context(), s.Store, sess.UserID, form)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildGroupDTO(group, time.Now()))
}

func (s *Server) MyGroupDetail(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchOwnedGroup(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, buildGroupDTO(group, time.Now()))
}

func (s *Server) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchOwnedGroup(w, r)
	if !ok {
		return
	}
	var form services.GroupForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	updated, err := services.UpdateGroup(r.Context(), s.Store, group.ID, form)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildGroupDTO(updated, time.Now()))
}

func (s *Server) BoostGroup(w http.ResponseWriter, r *http.Request) {
	group, ok := s.fetchOwnedGroup(w, r)
	if !ok {
		return
	}
	updated, err := services.BoostGroup(r.Context(), s.Store, group, s.BoostWindow(), time.Now())
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildGroupDTO(updated, time.Now()))
}

// fetchOwnedGroup resolves {groupId} and enforces that the caller owns the
// listing; admins may act on any listing.
func (s *Server) fetchOwnedGroup(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	group, ok := s.fetchGroupParam(w, r)
	if !ok {
		return models.Group{}, false
	}
	sess := CurrentSession(r)
	if group.OwnerID != sess.UserID && !sess.IsAdmin() {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return models.Group{}, false
	}
	return group, true
}
