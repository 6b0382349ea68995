package sessions

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName     = "petrescue_session"
	currentAdminKey = "current_admin"
)

// Manager wraps the cookie store so handlers carry an explicit handle
// instead of package state. The session holds one value: the logged-in
// admin's email under "current_admin". Flash messages ride the same
// cookie.
type Manager struct {
	store *sessions.CookieStore
}

// New derives two keys from the secret (signing + encryption) and builds
// the cookie store. secure marks the cookie Secure for HTTPS deployments.
func New(secret string, secure bool) *Manager {
	if secret == "" {
		// empty secret happens in dev containers; refusing to start would
		// be worse than a known-insecure default
		secret = "dev-insecure-secret-change-me"
	}
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &Manager{store: store}
}

func (m *Manager) session(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, sessionName)
}

// SetCurrentAdmin marks the session as authenticated for this email.
func (m *Manager) SetCurrentAdmin(w http.ResponseWriter, r *http.Request, email string) error {
	s, err := m.session(r)
	if err != nil {
		return err
	}
	s.Values[currentAdminKey] = email
	return s.Save(r, w)
}

// CurrentAdmin returns the logged-in admin's email, if any.
func (m *Manager) CurrentAdmin(r *http.Request) (string, bool) {
	s, err := m.session(r)
	if err != nil {
		return "", false
	}
	email, ok := s.Values[currentAdminKey].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// Clear logs the admin out.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, err := m.session(r)
	if err != nil {
		return err
	}
	delete(s.Values, currentAdminKey)
	return s.Save(r, w)
}

// Flash queues a one-shot message for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	s, err := m.session(r)
	if err != nil {
		return
	}
	s.AddFlash(msg)
	_ = s.Save(r, w)
}

// Flashes drains the queued messages. Must run before the response body
// is written since draining re-saves the cookie.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	s, err := m.session(r)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)
	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if msg, ok := v.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
