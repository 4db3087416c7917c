package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRootServesIndex(t *testing.T) {
	w := get(t, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "G1 Creative") {
		t.Error("index page missing site name")
	}
}

func TestCleanURLsMapToHTML(t *testing.T) {
	for _, path := range []string{"/about", "/services", "/pricing", "/portfolio", "/insights", "/contact"} {
		w := get(t, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, w.Code)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	for _, path := range []string{"/styles.css", "/main.js"} {
		w := get(t, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, w.Code)
		}
	}
}

func TestUnknownPathServes404Page(t *testing.T) {
	w := get(t, "/no-such-page")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Page not found") {
		t.Error("404 response missing the embedded 404 page")
	}
}
