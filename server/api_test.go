package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Anggahrm/biolink/internal/models"
)

func TestAPIListLinksActiveOnly(t *testing.T) {
	db := &MockDatabase{links: []models.Link{
		{ID: "a", Title: "A", IsActive: true},
		{ID: "b", Title: "B", IsActive: false},
	}}
	h := newTestServer(db).Routes()

	w := doJSON(t, h, "GET", "/api/links", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	links := decodeBody[[]models.Link](t, w)
	if len(links) != 1 || links[0].ID != "a" {
		t.Errorf("expected only the active link, got %+v", links)
	}
}

func TestAPIListEmptyIsArray(t *testing.T) {
	h := newTestServer(&MockDatabase{}).Routes()

	for _, path := range []string{"/api/links", "/api/music"} {
		w := doJSON(t, h, "GET", path, "", "")
		if got := w.Body.String(); got != "[]\n" {
			t.Errorf("%s: expected empty array, got %q", path, got)
		}
	}
}

func TestAPIListStoreFault(t *testing.T) {
	h := newTestServer(&MockDatabase{linksErr: errors.New("dial tcp: refused")}).Routes()

	w := doJSON(t, h, "GET", "/api/links", "", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody[errorResponse](t, w)
	if body.Error != "Failed to fetch links" {
		t.Errorf("expected opaque message, got %q", body.Error)
	}
}

func TestAPIMutationsRequireSession(t *testing.T) {
	db := &MockDatabase{links: []models.Link{{ID: "a", Title: "A", IsActive: true}}}
	h := newTestServer(db).Routes()

	requests := []struct{ method, path, body string }{
		{"POST", "/api/links", `{"title":"x","url":"https://x"}`},
		{"PUT", "/api/links/a", `{"title":"changed"}`},
		{"DELETE", "/api/links/a", ""},
		{"POST", "/api/music", `{"title":"x","artist":"y","url":"/z.mp3"}`},
		{"PUT", "/api/profile", `{"name":"x"}`},
		{"GET", "/api/admin/content", ""},
	}
	for _, rq := range requests {
		w := doJSON(t, h, rq.method, rq.path, rq.body, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", rq.method, rq.path, w.Code)
		}
	}
	if len(db.links) != 1 || db.links[0].Title != "A" {
		t.Errorf("expected no mutation, got %+v", db.links)
	}

	w := doJSON(t, h, "DELETE", "/api/links/a", "", "forged")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown token, got %d", w.Code)
	}
}

func TestAPICreateLinkDefaults(t *testing.T) {
	db := &MockDatabase{}
	h := newTestServer(db).Routes()
	token := login(t, db)

	w := doJSON(t, h, "POST", "/api/links", `{"title":"GitHub","url":"https://github.com"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	link := decodeBody[models.Link](t, w)
	if link.ID == "" || link.Icon != "link" || link.Category != "custom" || link.Color != "#FF6B6B" || link.Order != 0 || !link.IsActive {
		t.Errorf("defaults not applied: %+v", link)
	}
}

func TestAPICreateValidation(t *testing.T) {
	db := &MockDatabase{}
	h := newTestServer(db).Routes()
	token := login(t, db)

	cases := []struct{ path, body string }{
		{"/api/links", `{"title":"no url"}`},
		{"/api/links", `{"title":"","url":"https://x"}`},
		{"/api/music", `{"title":"t","url":"/a.mp3"}`},
		{"/api/links", `{not json`},
		{"/api/links", `{"title":"t","url":"https://x","order":2147483648}`},
		{"/api/music", `{"title":"t","artist":"a","url":"/a.mp3","order":-2147483649}`},
	}
	for _, c := range cases {
		w := doJSON(t, h, "POST", c.path, c.body, token)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s %s: expected 400, got %d", c.path, c.body, w.Code)
		}
	}
	if len(db.links) != 0 || len(db.tracks) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestAPIUpdateLink(t *testing.T) {
	db := &MockDatabase{links: []models.Link{{ID: "a", Title: "Old", URL: "https://old", IsActive: true}}}
	h := newTestServer(db).Routes()
	token := login(t, db)

	w := doJSON(t, h, "PUT", "/api/links/a", `{"title":"New"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	link := decodeBody[models.Link](t, w)
	if link.Title != "New" || link.URL != "https://old" {
		t.Errorf("expected partial update, got %+v", link)
	}

	w = doJSON(t, h, "PUT", "/api/links/a", `{"url":"  "}`, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank url, got %d", w.Code)
	}

	w = doJSON(t, h, "PUT", "/api/links/a", `{"order":9999999999}`, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out of range order, got %d", w.Code)
	}

	w = doJSON(t, h, "PUT", "/api/links/missing", `{"title":"x"}`, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAPIDelete(t *testing.T) {
	db := &MockDatabase{
		links:  []models.Link{{ID: "a", IsActive: true}},
		tracks: []models.Track{{ID: "t", IsActive: true}},
	}
	h := newTestServer(db).Routes()
	token := login(t, db)

	w := doJSON(t, h, "DELETE", "/api/links/a", "", token)
	if w.Code != http.StatusOK || !decodeBody[successResponse](t, w).Success {
		t.Fatalf("expected success, got %d %s", w.Code, w.Body.String())
	}
	if len(db.links) != 0 {
		t.Error("expected link removed")
	}

	w = doJSON(t, h, "DELETE", "/api/links/a", "", token)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing id, got %d", w.Code)
	}

	w = doJSON(t, h, "DELETE", "/api/music/t", "", token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPIGetInactiveHiddenFromAnonymous(t *testing.T) {
	db := &MockDatabase{tracks: []models.Track{{ID: "t", Title: "Draft", IsActive: false}}}
	h := newTestServer(db).Routes()

	w := doJSON(t, h, "GET", "/api/music/t", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 anonymously, got %d", w.Code)
	}

	w = doJSON(t, h, "GET", "/api/music/t", "", login(t, db))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with a session, got %d", w.Code)
	}
}

func TestAPIProfile(t *testing.T) {
	db := &MockDatabase{}
	h := newTestServer(db).Routes()

	w := doJSON(t, h, "GET", "/api/profile", "", "")
	if w.Code != http.StatusOK || w.Body.String() != "null\n" {
		t.Errorf("expected null profile, got %d %q", w.Code, w.Body.String())
	}

	db.profile = &models.Profile{ID: models.ProfileID, Name: "Your Name", Bio: "bio"}
	token := login(t, db)

	w = doJSON(t, h, "PUT", "/api/profile", `{"name":""}`, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", w.Code)
	}

	w = doJSON(t, h, "PUT", "/api/profile", `{"bio":"new bio"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	p := decodeBody[models.Profile](t, w)
	if p.Name != "Your Name" || p.Bio != "new bio" {
		t.Errorf("expected partial update, got %+v", p)
	}
}

func TestAPILoginLogout(t *testing.T) {
	db := &MockDatabase{password: "hunter2"}
	h := newTestServer(db).Routes()

	w := doJSON(t, h, "POST", "/api/auth/login", `{"password":"hunter2 "}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for near-miss password, got %d", w.Code)
	}

	w = doJSON(t, h, "POST", "/api/auth/login", `{"password":"hunter2"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("expected session cookie")
	}

	w = doJSON(t, h, "GET", "/api/auth/session", "", token)
	if !decodeBody[sessionResponse](t, w).Authenticated {
		t.Error("expected authenticated session")
	}

	w = doJSON(t, h, "POST", "/api/auth/logout", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, h, "GET", "/api/auth/session", "", token)
	if decodeBody[sessionResponse](t, w).Authenticated {
		t.Error("expected session to end after logout")
	}
}

func TestAPIContentIncludesInactive(t *testing.T) {
	db := &MockDatabase{
		profile: &models.Profile{ID: models.ProfileID, Name: "Me"},
		links:   []models.Link{{ID: "a", IsActive: true}, {ID: "b", IsActive: false}},
		tracks:  []models.Track{{ID: "t", IsActive: false}},
	}
	h := newTestServer(db).Routes()

	w := doJSON(t, h, "GET", "/api/admin/content", "", login(t, db))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	content := decodeBody[models.Content](t, w)
	if content.Profile == nil || len(content.Links) != 2 || len(content.Tracks) != 1 {
		t.Errorf("unexpected content %+v", content)
	}
}

func TestAPIUnknownRoute(t *testing.T) {
	h := newTestServer(&MockDatabase{}).Routes()

	w := doJSON(t, h, "GET", "/api/nope", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
