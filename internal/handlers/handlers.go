package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"PetRescue/internal/images"
	"PetRescue/internal/middleware"
	"PetRescue/internal/sessions"
	"PetRescue/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates
var tplFS embed.FS

// Handler carries the request-scoped dependencies: every handler is a
// method on it, nothing lives in package state.
type Handler struct {
	Store     *store.Store
	Images    images.Store
	Sessions  *sessions.Manager
	Log       *zap.Logger
	MaxUpload int64
}

func New(st *store.Store, imgs images.Store, sm *sessions.Manager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Store:     st,
		Images:    imgs,
		Sessions:  sm,
		Log:       log,
		MaxUpload: 10 << 20, // 10 MB
	}
}

// Routes registers the full route table on r. The caller owns the router
// so serving, tests and middleware stacking stay in one place.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/rescue/{rescueID}", h.RescuePage)
	r.Get("/rescue/{rescueID}/animal/{animalID}", h.AnimalPage)
	r.Get("/handle-loading", h.LoadMore)

	r.Get("/admin-login", h.LoginForm)
	r.Post("/handle-admin-login", h.HandleLogin)
	r.Get("/admin-logout", h.Logout)
	r.Get("/admin-signup", h.Signup)

	r.Get("/admin/{adminID}", h.Dashboard)
	r.Get("/admin/{adminID}/rescue-info", h.RescueInfo)
	r.Post("/handle-add-animal", middleware.Authenticated(h.Sessions, h.HandleAddAnimal))
	r.Post("/handle-add-rescue", middleware.Authenticated(h.Sessions, h.HandleAddRescue))
	r.Get("/success", middleware.Authenticated(h.Sessions, h.Success))
}

// render composes base.html with the page templates and injects the data
// every page wants: session state, flashes, year.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, data map[string]any, pages ...string) {
	if data == nil {
		data = map[string]any{}
	}
	email, isAdmin := h.Sessions.CurrentAdmin(r)
	data["IsAdmin"] = isAdmin
	data["CurrentAdmin"] = email
	data["Flashes"] = h.Sessions.Flashes(w, r)
	data["Year"] = time.Now().Year()

	files := make([]string, 0, len(pages)+1)
	files = append(files, "templates/base.html")
	for _, p := range pages {
		files = append(files, "templates/"+p)
	}
	tmpl, err := template.ParseFS(tplFS, files...)
	if err != nil {
		h.Log.Error("template parse", zap.Strings("pages", pages), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.Log.Error("template execute", zap.Strings("pages", pages), zap.Error(err))
	}
}

// urlID parses a chi URL parameter as an id.
func urlID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad %s", name)
	}
	return id, nil
}

// formUpload pulls the named file part out of a parsed multipart form and
// checks its extension before anything touches the database.
func formUpload(r *http.Request, field string) (images.Upload, func(), error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		return images.Upload{}, nil, fmt.Errorf("%w: missing file", images.ErrInvalidUpload)
	}
	if _, err := images.Ext(fh.Filename); err != nil {
		f.Close()
		return images.Upload{}, nil, err
	}
	return images.Upload{File: f, Name: fh.Filename}, func() { f.Close() }, nil
}
