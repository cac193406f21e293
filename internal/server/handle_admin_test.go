package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/milongahq/tangotune/internal/catalog"
)

func adminRouter(t *testing.T) (*chi.Mux, func() []*http.Cookie) {
	t.Helper()
	store := setupStore(t)
	seedTestCatalog(t, store)
	r := testRouter(t, store)

	login := func() []*http.Cookie {
		body, _ := json.Marshal(AdminLoginRequest{Email: "admin@tangotune.local", Password: "changeme"})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		return w.Result().Cookies()
	}

	return r, login
}

func TestAdminLoginGoodCredentials(t *testing.T) {
	r, _ := adminRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@tangotune.local", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AdminMeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Email != "admin@tangotune.local" {
		t.Errorf("expected email admin@tangotune.local, got %q", resp.Email)
	}

	cookies := w.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "admin_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected admin_session cookie to be set")
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	r, _ := adminRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@tangotune.local", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	r, _ := adminRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "nobody@example.com", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminMe(t *testing.T) {
	r, login := adminRouter(t)
	cookies := login()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AdminMeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Email != "admin@tangotune.local" {
		t.Errorf("expected email admin@tangotune.local, got %q", resp.Email)
	}
}

func TestAdminLogout(t *testing.T) {
	r, login := adminRouter(t)
	cookies := login()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// Session should be invalid now.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAdminEndpointsUnauthenticated(t *testing.T) {
	r, _ := adminRouter(t)

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/me"},
		{http.MethodGet, "/api/admin/performers"},
		{http.MethodPut, "/api/admin/performers/someone"},
		{http.MethodGet, "/api/admin/tracks"},
		{http.MethodPost, "/api/admin/catalog/import"},
	}

	for _, ep := range endpoints {
		req := httptest.NewRequest(ep.method, ep.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", ep.method, ep.path, w.Code)
		}
	}
}

func TestAdminPerformerUpdate(t *testing.T) {
	r, login := adminRouter(t)
	cookies := login()

	addCookies := func(req *http.Request) {
		for _, c := range cookies {
			req.AddCookie(c)
		}
	}

	// List — seeded performer present.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/performers", nil)
	addCookies(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var performers []PerformerItem
	json.NewDecoder(w.Body).Decode(&performers)
	if len(performers) != 1 || performers[0].Name != "Juan D'Arienzo" {
		t.Fatalf("list: expected seeded performer, got %v", performers)
	}

	// Deactivate it.
	body, _ := json.Marshal(PerformerUpdateRequest{Active: false, Level: 3})
	req = httptest.NewRequest(http.MethodPut, "/api/admin/performers/Juan%20D'Arienzo", bytes.NewReader(body))
	addCookies(req)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A session over an all-inactive catalog cannot start.
	req = httptest.NewRequest(http.MethodPost, "/api/session", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("session over inactive catalog: expected 503, got %d", w.Code)
	}

	// Unknown performer.
	body, _ = json.Marshal(PerformerUpdateRequest{Active: true, Level: 1})
	req = httptest.NewRequest(http.MethodPut, "/api/admin/performers/Nobody", bytes.NewReader(body))
	addCookies(req)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown performer: expected 404, got %d", w.Code)
	}
}

func TestAdminCatalogImport(t *testing.T) {
	r, login := adminRouter(t)
	cookies := login()

	importReq := ImportRequest{
		Songs: []catalog.RawSong{
			{Title: "01 Bahía Blanca", Artist: "Di Sarli, Carlos", Genre: "Tango", Path: "/music/bahia.mp3"},
			{Title: "Desde el Alma", Artist: "Francisco Canaro", Genre: "Vals", Path: "/music/desde.mp3"},
			{Title: "Mystery Song", Artist: "Unknown Orchestra", Genre: "Tango", Path: "/music/mystery.mp3"},
		},
		Master: []catalog.MasterPerformer{
			{Name: "Carlos Di Sarli", Active: true, Level: 1},
			{Name: "Francisco Canaro", Active: true, Level: 1},
		},
	}
	body, _ := json.Marshal(importReq)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog/import", bytes.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ImportResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Tracks != 2 {
		t.Errorf("import: expected 2 tracks, got %d", resp.Tracks)
	}
	if resp.Performers != 2 {
		t.Errorf("import: expected 2 performers, got %d", resp.Performers)
	}
	if len(resp.Unmatched) != 1 {
		t.Errorf("import: expected 1 unmatched artist, got %v", resp.Unmatched)
	}

	// The imported catalog replaced the seeded one.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/tracks", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("tracks: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var tracks []TrackItem
	json.NewDecoder(w.Body).Decode(&tracks)
	if len(tracks) != 2 {
		t.Fatalf("tracks: expected 2, got %d", len(tracks))
	}
	found := false
	for _, tr := range tracks {
		if tr.Title == "Bahia Blanca" {
			found = true
			if tr.PerformerName != "Carlos Di Sarli" {
				t.Errorf("expected flipped performer name, got %q", tr.PerformerName)
			}
		}
	}
	if !found {
		t.Error("expected a track titled 'Bahia Blanca' with diacritics and track number stripped")
	}
}

func TestAdminCatalogImportEmptyBody(t *testing.T) {
	r, login := adminRouter(t)
	cookies := login()

	body, _ := json.Marshal(ImportRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/catalog/import", bytes.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
