package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"worldmark/internal/model"
	"worldmark/internal/services/auth"
	"worldmark/internal/web/middleware"
	"worldmark/internal/web/templates/layout"
	"worldmark/internal/web/templates/pages"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUsername(r.Context()) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: layout.PageData{
			Title: "Log in",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	renderPage(w, r, pages.Login(data))
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUsername(r.Context()) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData: layout.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
		FieldErrors: make(map[string]string),
	}
	renderPage(w, r, pages.Register(data))
}

// Login handles the login form
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderLoginError(w, r, "Username and password are required", username)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, "Invalid username or password", username)
		return
	}

	setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Welcome back, "+username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Register handles the registration form
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	fieldErrors := make(map[string]string)
	if username == "" {
		fieldErrors["username"] = "Username is required"
	} else if len(username) < 3 {
		fieldErrors["username"] = "Username must be at least 3 characters"
	} else if len(username) > 20 {
		fieldErrors["username"] = "Username must be at most 20 characters"
	}
	if password == "" {
		fieldErrors["password"] = "Password is required"
	} else if len(password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if password != passwordConfirm {
		fieldErrors["password_confirm"] = "Passwords do not match"
	}
	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", username, fieldErrors)
		return
	}

	session, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			h.renderRegisterError(w, r, "", username, map[string]string{"username": "Username already taken"})
		} else {
			h.renderRegisterError(w, r, "Registration failed", username, nil)
		}
		return
	}

	setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Account created! Welcome, "+username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	data := pages.LoginData{
		PageData: layout.PageData{Title: "Log in"},
		Username: username,
		Error:    errorMsg,
	}
	renderPage(w, r, pages.Login(data))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, username string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	data := pages.RegisterData{
		PageData:    layout.PageData{Title: "Register"},
		Username:    username,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}
	renderPage(w, r, pages.Register(data))
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
