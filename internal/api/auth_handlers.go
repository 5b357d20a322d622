package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/auth"
	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store"
)

// AuthHandlers serves registration and login.
type AuthHandlers struct {
	users      store.UserStore
	jwtService *auth.JWTService
}

func NewAuthHandlers(users store.UserStore, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{users: users, jwtService: jwtService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Register creates a new account. The role defaults to staff unless a valid
// role is supplied.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "name and email are required")
		return
	}

	role := model.RoleStaff
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondMessage(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondMessage(w, http.StatusBadRequest, "user already exists")
			return
		}
		respondServiceError(w, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	log.WithFields(log.Fields{"user": user.ID, "role": user.Role}).Info("user registered")
	respondJSON(w, http.StatusCreated, authResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// Login authenticates by email and password.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondServiceError(w, err)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, ExpiresAt: expiresAt, User: user})
}
