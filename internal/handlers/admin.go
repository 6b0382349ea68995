package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"PetRescue/internal/images"
	"PetRescue/internal/models"
	"PetRescue/internal/store"

	"go.uber.org/zap"
)

// ownedAdmin loads the admin addressed by the adminID URL parameter and
// verifies the session identity owns it. Any failure means a bare
// redirect home, with no hint about why.
func (h *Handler) ownedAdmin(w http.ResponseWriter, r *http.Request) (*models.Admin, bool) {
	id, err := urlID(r, "adminID")
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	email, ok := h.Sessions.CurrentAdmin(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	admin, err := h.Store.GetAdminByID(r.Context(), id)
	if err != nil || admin.Email != email {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	return admin, true
}

// Dashboard shows the add-animal form for the admin's rescue. Admins
// without a rescue are sent to the rescue-creation form first.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.ownedAdmin(w, r)
	if !ok {
		return
	}
	if admin.RescueID == nil {
		http.Redirect(w, r, fmt.Sprintf("/admin/%d/rescue-info", admin.AdminID), http.StatusFound)
		return
	}
	rescue, err := h.Store.GetRescue(r.Context(), *admin.RescueID)
	if err != nil {
		h.Log.Error("dashboard rescue", zap.Int64("rescue_id", *admin.RescueID), zap.Error(err))
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	genders, err := h.Store.Genders(r.Context())
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	ages, err := h.Store.Ages(r.Context())
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	sizes, err := h.Store.Sizes(r.Context())
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	breeds, err := h.Store.Breeds(r.Context())
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, map[string]any{
		"Title":   "Dashboard",
		"Admin":   admin,
		"Rescue":  rescue,
		"Genders": genders,
		"Ages":    ages,
		"Sizes":   sizes,
		"Breeds":  breeds,
	}, "dashboard.html")
}

// RescueInfo renders the rescue-creation form.
func (h *Handler) RescueInfo(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.ownedAdmin(w, r)
	if !ok {
		return
	}
	if admin.RescueID != nil {
		// already has a rescue; nothing to create
		http.Redirect(w, r, fmt.Sprintf("/admin/%d", admin.AdminID), http.StatusFound)
		return
	}
	h.render(w, r, map[string]any{
		"Title": "Create Your Rescue",
		"Admin": admin,
	}, "rescue_info.html")
}

// sessionAdmin resolves the logged-in admin for the form handlers, which
// are not addressed by admin id.
func (h *Handler) sessionAdmin(w http.ResponseWriter, r *http.Request) (*models.Admin, bool) {
	email, ok := h.Sessions.CurrentAdmin(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	admin, err := h.Store.GetAdminByEmail(r.Context(), email)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	return admin, true
}

// HandleAddAnimal validates the uploaded image, then creates the listing
// scoped to the admin's own rescue. Nothing is written when validation
// fails.
func (h *Handler) HandleAddAnimal(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.sessionAdmin(w, r)
	if !ok {
		return
	}
	if admin.RescueID == nil {
		h.Sessions.Flash(w, r, "Create your rescue before adding animals.")
		http.Redirect(w, r, fmt.Sprintf("/admin/%d/rescue-info", admin.AdminID), http.StatusFound)
		return
	}
	back := fmt.Sprintf("/admin/%d", admin.AdminID)

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		h.Sessions.Flash(w, r, "Image too large (limit 10 MB).")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	up, closeUp, err := formUpload(r, "image")
	if err != nil {
		h.Sessions.Flash(w, r, "Please attach a photo (png, jpg, jpeg or gif).")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	defer closeUp()

	na := store.NewAnimal{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Bio:      strings.TrimSpace(r.FormValue("bio")),
		Gender:   r.FormValue("gender"),
		Age:      r.FormValue("age"),
		Size:     r.FormValue("size"),
		Breed:    r.FormValue("breed"),
		RescueID: *admin.RescueID,
	}
	if na.Name == "" {
		h.Sessions.Flash(w, r, "Please give the animal a name.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}

	animal, err := h.Store.AddAnimal(r.Context(), na, up, h.Images)
	switch {
	case errors.Is(err, store.ErrUnknownLookup):
		h.Sessions.Flash(w, r, "Unrecognized gender, age, size or breed.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	case errors.Is(err, images.ErrInvalidUpload):
		h.Sessions.Flash(w, r, "Please attach a photo (png, jpg, jpeg or gif).")
		http.Redirect(w, r, back, http.StatusFound)
		return
	case err != nil:
		h.Log.Error("add animal", zap.Error(err))
		h.Sessions.Flash(w, r, "Could not save the animal, please try again.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/rescue/%d", animal.RescueID), http.StatusFound)
}

// HandleAddRescue creates the admin's rescue profile and associates the
// admin with it.
func (h *Handler) HandleAddRescue(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.sessionAdmin(w, r)
	if !ok {
		return
	}
	if admin.RescueID != nil {
		http.Redirect(w, r, fmt.Sprintf("/admin/%d", admin.AdminID), http.StatusFound)
		return
	}
	back := fmt.Sprintf("/admin/%d/rescue-info", admin.AdminID)

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		h.Sessions.Flash(w, r, "Image too large (limit 10 MB).")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	up, closeUp, err := formUpload(r, "image")
	if err != nil {
		h.Sessions.Flash(w, r, "Please attach a photo (png, jpg, jpeg or gif).")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	defer closeUp()

	nr := store.NewRescue{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Address: strings.TrimSpace(r.FormValue("address")),
		Email:   strings.TrimSpace(r.FormValue("email")),
	}
	if nr.Name == "" {
		h.Sessions.Flash(w, r, "Please name your rescue.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}

	rescue, err := h.Store.AddRescue(r.Context(), nr, up, h.Images)
	switch {
	case errors.Is(err, images.ErrInvalidUpload):
		h.Sessions.Flash(w, r, "Please attach a photo (png, jpg, jpeg or gif).")
		http.Redirect(w, r, back, http.StatusFound)
		return
	case err != nil:
		h.Log.Error("add rescue", zap.Error(err))
		h.Sessions.Flash(w, r, "Could not save the rescue, please try again.")
		http.Redirect(w, r, back, http.StatusFound)
		return
	}
	if err := h.Store.SetAdminRescue(r.Context(), admin.AdminID, rescue.RescueID); err != nil {
		h.Log.Error("set admin rescue", zap.Error(err))
	}
	http.Redirect(w, r, "/success", http.StatusFound)
}

// Success confirms the most recently created rescue and admin after the
// add-rescue redirect.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Success"}
	if rescue, err := h.Store.LastRescueAdded(r.Context()); err == nil {
		data["Rescue"] = rescue
	}
	if admin, err := h.Store.LastAdminAdded(r.Context()); err == nil {
		data["Admin"] = admin
	}
	h.render(w, r, data, "success.html")
}
