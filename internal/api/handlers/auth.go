package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gatherhub/server/internal/api/respond"
	"github.com/gatherhub/server/internal/domain/users"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	Users    *users.Service
	Validate *validator.Validate
}

func NewAuthHandler(service *users.Service) *AuthHandler {
	return &AuthHandler{Users: service, Validate: validator.New()}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GetUserByUsername handles GET /api/auth/users?username=.
// The single-element array response matches the shape clients already
// consume.
func (h *AuthHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respond.Error(w, r, http.StatusBadRequest, "Username parameter is required", nil)
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "User not found", err)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		return
	}

	respond.JSON(w, http.StatusOK, []userPayload{{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Missing or invalid username, email, or password", err)
		return
	}

	_, err := h.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) || errors.Is(err, users.ErrEmailTaken) {
			respond.Error(w, r, http.StatusConflict, "User with that username or email already exists", err)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Error registering user", err)
		return
	}

	respond.Message(w, http.StatusCreated, "User registered successfully!")
}

// Login handles POST /api/auth/login. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Missing username or password", err)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrInvalidCredentials) {
			respond.Error(w, r, http.StatusUnauthorized, "Invalid username or password", err)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "Unexpected server error", err)
		return
	}

	respond.Message(w, http.StatusOK, fmt.Sprintf("User %s logged in successfully!", user.Username))
}
