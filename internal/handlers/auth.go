package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"PetRescue/internal/store"

	"go.uber.org/zap"
)

// LoginForm renders the admin login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, map[string]any{
		"Title": "Admin Login",
	}, "login.html")
}

// HandleLogin authenticates the submitted credentials. Success redirects
// to the dashboard, or to the rescue-creation form when the admin has no
// rescue yet. Failure flashes a generic message and redirects home; the
// response never says whether the account exists.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Sessions.Flash(w, r, "Could not read the login form.")
		http.Redirect(w, r, "/admin-login", http.StatusFound)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.Sessions.Flash(w, r, "Please enter your email and password.")
		http.Redirect(w, r, "/admin-login", http.StatusFound)
		return
	}

	admin, err := h.Store.Authenticate(r.Context(), email, password)
	if errors.Is(err, store.ErrAuthFailed) {
		h.Sessions.Flash(w, r, "Incorrect email or password.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		h.Log.Error("authenticate", zap.Error(err))
		h.Sessions.Flash(w, r, "Something went wrong, please try again.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.Sessions.SetCurrentAdmin(w, r, admin.Email); err != nil {
		h.Log.Error("session save", zap.Error(err))
		h.Sessions.Flash(w, r, "Something went wrong, please try again.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if admin.RescueID == nil {
		http.Redirect(w, r, fmt.Sprintf("/admin/%d/rescue-info", admin.AdminID), http.StatusFound)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/admin/%d", admin.AdminID), http.StatusFound)
}

// Logout clears the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Clear(w, r); err != nil {
		h.Log.Error("session clear", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Signup is a static page; accounts are provisioned by hand.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, map[string]any{
		"Title": "Admin Signup",
	}, "signup.html")
}
