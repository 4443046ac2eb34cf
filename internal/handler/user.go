package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/habitap/habitap/internal/auth"
	"github.com/habitap/habitap/internal/service"
)

// UserHandler serves registration, login and the current-user endpoint.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// registerRequest is the POST /users/ body.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the POST /token body on success.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /users/
// BODY: {"email": "a@x.com", "password": "pw1"}
//
// Returns the created user (without the password hash) on 200, or 400 if
// the email is already registered.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid JSON body",
		})
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleToken exchanges credentials for a bearer access token.
//
// HTTP: POST /token
// BODY: application/x-www-form-urlencoded, username=<email>&password=<pw>
//
// The form-encoded shape (and the "username" field carrying an email) is
// the OAuth2 password flow this API has always exposed. Bad credentials
// get a single 401 regardless of which half was wrong.
func (h *UserHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid form body",
		})
		return
	}

	token, err := h.users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// HandleMe returns the authenticated user's own record.
//
// HTTP: GET /users/me/ (bearer)
//
// The middleware already resolved and checked the user; this handler just
// reads it back out of the context.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Could not validate credentials",
		})
		return
	}

	writeJSON(w, http.StatusOK, user)
}
