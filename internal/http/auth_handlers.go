package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/services"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string   `json:"accessToken"`
	ExpiresAt   int64    `json:"expiresAt"`
	User        *UserDTO `json:"user"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	_, exists, err := services.FindUserByEmail(r.Context(), s.Store, email)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	if exists {
		WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}
	hash, err := s.Tokens.HashPassword(req.Password)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	user, err := services.CreateUser(r.Context(), s.Store, name, email, hash)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	s.writeTokenResponse(w, user)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Authentication failed")
		return
	}
	user, found, err := services.FindUserByEmail(r.Context(), s.Store, email)
	if err != nil {
		writeRemoteFailure(w, err)
		return
	}
	if !found || !s.Tokens.VerifyPassword(req.Password, user.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.writeTokenResponse(w, user)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	// Sessions are stateless; clients drop the token.
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeTokenResponse(w http.ResponseWriter, user models.User) {
	access, exp, err := s.Tokens.CreateSessionToken(user, time.Now())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: access,
		ExpiresAt:   exp,
		User:        buildUserDTO(user),
	})
}
