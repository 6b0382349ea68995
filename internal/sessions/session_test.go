package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies the cookies set by w onto a fresh request, the way a
// browser would on the next page load.
func carry(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestCurrentAdminRoundTrip(t *testing.T) {
	m := New("test-secret", false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := m.CurrentAdmin(r)
	assert.False(t, ok)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetCurrentAdmin(w, r, "test1@gmail.com"))
	require.NotEmpty(t, w.Result().Cookies())

	email, ok := m.CurrentAdmin(carry(t, w))
	require.True(t, ok)
	assert.Equal(t, "test1@gmail.com", email)
}

func TestClear(t *testing.T) {
	m := New("test-secret", false)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetCurrentAdmin(w, httptest.NewRequest(http.MethodGet, "/", nil), "test1@gmail.com"))

	r := carry(t, w)
	w2 := httptest.NewRecorder()
	require.NoError(t, m.Clear(w2, r))

	_, ok := m.CurrentAdmin(carry(t, w2))
	assert.False(t, ok)
}

func TestFlashesDrainOnce(t *testing.T) {
	m := New("test-secret", false)

	w := httptest.NewRecorder()
	m.Flash(w, httptest.NewRequest(http.MethodGet, "/", nil), "Incorrect email or password.")

	r := carry(t, w)
	w2 := httptest.NewRecorder()
	msgs := m.Flashes(w2, r)
	require.Equal(t, []string{"Incorrect email or password."}, msgs)

	// draining rewrote the cookie; the next request sees nothing
	assert.Empty(t, m.Flashes(httptest.NewRecorder(), carry(t, w2)))
}

func TestCookieIsTamperProof(t *testing.T) {
	m := New("test-secret", false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "petrescue_session", Value: "forged"})
	_, ok := m.CurrentAdmin(r)
	assert.False(t, ok)
}

func TestDifferentSecretsDoNotShareSessions(t *testing.T) {
	a := New("secret-a", false)
	b := New("secret-b", false)

	w := httptest.NewRecorder()
	require.NoError(t, a.SetCurrentAdmin(w, httptest.NewRequest(http.MethodGet, "/", nil), "test1@gmail.com"))

	_, ok := b.CurrentAdmin(carry(t, w))
	assert.False(t, ok)
}
