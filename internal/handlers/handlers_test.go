package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"PetRescue/internal/images"
	"PetRescue/internal/sessions"
	"PetRescue/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type app struct {
	srv    *httptest.Server
	store  *store.Store
	images *images.Memory
	client *http.Client
}

// newApp stands up the full router over a seeded in-memory database. The
// client keeps cookies but never follows redirects, so tests can assert
// on Location headers.
func newApp(t *testing.T) *app {
	t.Helper()

	s, err := store.Open("sqlite", ":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.LoadDir(ctx, filepath.Join("..", "..", "seed_data")))

	imgs := images.NewMemory()
	h := New(s, imgs, sessions.New("test-secret", false), zap.NewNop())

	r := chi.NewRouter()
	h.Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &app{
		srv:    srv,
		store:  s,
		images: imgs,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (a *app) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	require.NoError(t, err)
	return resp
}

func (a *app) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, form)
	require.NoError(t, err)
	return resp
}

func (a *app) postMultipart(t *testing.T, path, filename string, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-image-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := a.client.Post(a.srv.URL+path, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func (a *app) login(t *testing.T, email, password string) *http.Response {
	t.Helper()
	return a.postForm(t, "/handle-admin-login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestIndex(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Animal Rescues")
	assert.Contains(t, page, "Gainesville Pet Rescue")
	assert.Contains(t, page, "Alachua County Animal Services")
	assert.Contains(t, page, "Plenty of Pit Bulls")
}

func TestRescuePage(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/rescue/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Adopt a Pet:")
	assert.Contains(t, page, "Archie")
	assert.Contains(t, page, `href="/rescue/1/animal/1"`)

	resp = a.get(t, "/rescue/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = a.get(t, "/rescue/abc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRescuePageShowsFirstPageOnly(t *testing.T) {
	a := newApp(t)

	page := body(t, a.get(t, "/rescue/2"))
	assert.Contains(t, page, "Luna")
	assert.Contains(t, page, "Scout")
	// animals 11 and 12 belong to the next page
	assert.NotContains(t, page, "Daisy")
	assert.NotContains(t, page, "Rocket")
}

func TestAnimalPage(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/rescue/1/animal/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Archie")
	assert.Contains(t, page, "male")
	assert.Contains(t, page, "terrier mix")

	// Archie belongs to rescue 1, not 2
	resp = a.get(t, "/rescue/2/animal/1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = a.get(t, "/rescue/1/animal/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAnimalPageWithUnsetLookups(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/rescue/3/animal/14")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Shadow")
}

func TestLoadMore(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/handle-loading?rescue_id=2&page=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	frag := body(t, resp)
	assert.Contains(t, frag, "Daisy")
	assert.Contains(t, frag, "Rocket")
	assert.NotContains(t, frag, "Luna")

	// past the last page the fragment is empty
	resp = a.get(t, "/handle-loading?rescue_id=2&page=5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, strings.TrimSpace(body(t, resp)))

	resp = a.get(t, "/handle-loading?rescue_id=0&page=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboardRequiresLogin(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/admin/4")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestLoginAndDashboard(t *testing.T) {
	a := newApp(t)

	resp := a.login(t, "test1@gmail.com", "1234")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/1", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = a.get(t, "/admin/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Gainesville Pet Rescue")
	assert.Contains(t, page, "beagle")

	// another admin's dashboard is off limits
	resp = a.get(t, "/admin/2")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestLoginFailureFlashes(t *testing.T) {
	a := newApp(t)

	resp := a.login(t, "test1@gmail.com", "wrong")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()

	// same message for an unknown account
	resp = a.login(t, "test8@gmail.com", "8888")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	page := body(t, a.get(t, "/"))
	assert.Contains(t, page, "Incorrect email or password.")

	// flashes drain on display
	page = body(t, a.get(t, "/"))
	assert.NotContains(t, page, "Incorrect email or password.")
}

func TestLoginWithoutRescueRedirectsToRescueInfo(t *testing.T) {
	a := newApp(t)

	resp := a.login(t, "test5@gmail.com", "5555")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/5/rescue-info", resp.Header.Get("Location"))
	resp.Body.Close()

	// the dashboard bounces back to the form until a rescue exists
	resp = a.get(t, "/admin/5")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/5/rescue-info", resp.Header.Get("Location"))
	resp.Body.Close()

	resp = a.get(t, "/admin/5/rescue-info")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "handle-add-rescue")
}

func TestLogout(t *testing.T) {
	a := newApp(t)

	a.login(t, "test1@gmail.com", "1234").Body.Close()
	resp := a.get(t, "/admin-logout")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp.Body.Close()

	resp = a.get(t, "/admin/1")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestAddAnimal(t *testing.T) {
	a := newApp(t)
	a.login(t, "test2@gmail.com", "2222").Body.Close()

	resp := a.postMultipart(t, "/handle-add-animal", "pup.png", map[string]string{
		"name":   "Banjo",
		"bio":    "Loves squeaky toys.",
		"gender": "male",
		"age":    "adult",
		"size":   "small",
		"breed":  "beagle",
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/rescue/2", resp.Header.Get("Location"))
	resp.Body.Close()

	animal, err := a.store.GetAnimal(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, "Banjo", animal.Name)
	assert.Equal(t, int64(2), animal.RescueID)
	assert.Equal(t, "/uploads/2-15.png", animal.ImgURL)
	assert.Equal(t, 1, a.images.Len())
}

func TestAddAnimalRejectsBadExtension(t *testing.T) {
	a := newApp(t)
	a.login(t, "test2@gmail.com", "2222").Body.Close()

	resp := a.postMultipart(t, "/handle-add-animal", "dog.bmp", map[string]string{
		"name": "Rex",
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/2", resp.Header.Get("Location"))
	resp.Body.Close()

	// nothing was written
	assert.Equal(t, 0, a.images.Len())
	_, err := a.store.GetAnimal(context.Background(), 15)
	assert.ErrorIs(t, err, store.ErrNotFound)

	page := body(t, a.get(t, "/admin/2"))
	assert.Contains(t, page, "Please attach a photo")
}

func TestAddAnimalRequiresLogin(t *testing.T) {
	a := newApp(t)

	resp := a.postMultipart(t, "/handle-add-animal", "pup.png", map[string]string{"name": "Banjo"})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()
	assert.Equal(t, 0, a.images.Len())
}

func TestAddRescueFlow(t *testing.T) {
	a := newApp(t)
	a.login(t, "test5@gmail.com", "5555").Body.Close()

	resp := a.postMultipart(t, "/handle-add-rescue", "shelter.jpg", map[string]string{
		"name":    "Second Chance Farm",
		"phone":   "352-555-0147",
		"address": "100 Barn Rd, Micanopy, FL",
		"email":   "contact@secondchance.org",
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/success", resp.Header.Get("Location"))
	resp.Body.Close()

	admin, err := a.store.GetAdminByID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, admin.RescueID)
	assert.Equal(t, int64(6), *admin.RescueID)

	rescue, err := a.store.GetRescue(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "Second Chance Farm", rescue.Name)
	assert.Equal(t, "/uploads/6.jpg", rescue.ImgURL)

	resp = a.get(t, "/success")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Second Chance Farm")
	assert.Contains(t, page, "test5@gmail.com")

	// the new rescue shows up on the homepage
	assert.Contains(t, body(t, a.get(t, "/")), "Second Chance Farm")
}

func TestSuccessRequiresLogin(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/success")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	resp.Body.Close()
}

func TestLoginAndSignupPages(t *testing.T) {
	a := newApp(t)

	resp := a.get(t, "/admin-login")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "handle-admin-login")
	assert.Contains(t, page, "Email:")

	resp = a.get(t, "/admin-signup")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Please contact us")
}
