package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"peopleflow/config"
	"peopleflow/middleware"
	"peopleflow/store"
)

type AuthHandler struct {
	config *config.Config
	users  store.Users
}

func NewAuthHandler(cfg *config.Config, users store.Users) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		users:  users,
	}
}

// Login checks the credentials and sets the session cookie the rest of the
// API authenticates with.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Ungültige Formulardaten")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.users.ByUsername(r.Context(), username)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Ungültige Anmeldedaten")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Ungültige Anmeldedaten")
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Token konnte nicht erstellt werden")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondData(w, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"name":     user.DisplayName(),
		"role":     user.Role,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondMessage(w, "Abgemeldet")
}

// Me returns the identity the page layer seeds the client context from.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Nicht angemeldet")
		return
	}
	respondData(w, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"name":     user.DisplayName(),
		"role":     user.Role,
	})
}
