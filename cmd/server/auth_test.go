package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestSessionValueRoundTrip(t *testing.T) {
	auth, err := newAuthService("secret")
	if err != nil {
		t.Fatalf("newAuthService: %v", err)
	}

	value := auth.createSessionValue("ana@example.com")
	email, ok := auth.verifySessionValue(value)
	if !ok || email != "ana@example.com" {
		t.Fatalf("verifySessionValue = %q, %v", email, ok)
	}
}

func TestSessionValueRejectsTampering(t *testing.T) {
	auth, _ := newAuthService("secret")
	other, _ := newAuthService("another-secret")

	value := auth.createSessionValue("ana@example.com")

	if _, ok := other.verifySessionValue(value); ok {
		t.Fatal("session signed with another secret must be rejected")
	}
	if _, ok := auth.verifySessionValue("bWFsbG9yeQ." + strings.Repeat("0", 64)); ok {
		t.Fatal("forged signature must be rejected")
	}
	for _, v := range []string{"", "no-dot", "a.b.c", "%%%.zz"} {
		if _, ok := auth.verifySessionValue(v); ok {
			t.Fatalf("malformed value %q must be rejected", v)
		}
	}
}

func TestEmptySecretGeneratesRandomKey(t *testing.T) {
	a, err := newAuthService("")
	if err != nil {
		t.Fatalf("newAuthService: %v", err)
	}
	b, _ := newAuthService("")

	if a.createSessionValue("x@y") == b.createSessionValue("x@y") {
		t.Fatal("expected different random secrets")
	}
}

func TestGreetingName(t *testing.T) {
	if got := greetingName("ana.silva@example.com"); got != "ana.silva" {
		t.Fatalf("greetingName = %q", got)
	}
	if got := greetingName("sem-arroba"); got != "sem-arroba" {
		t.Fatalf("greetingName = %q", got)
	}
}

func TestLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	form := url.Values{}
	form.Set("email", "ana.silva@example.com")
	form.Set("password", "qualquer")

	rr := postForm(t, h, "/login", form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rr.Code)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assertContains(t, rr.Body.String(), "Olá, ana.silva")

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("signed-in user should be redirected away from /login, got %d", rr.Code)
	}
}

func TestLoginRejectsMissingPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	form := url.Values{}
	form.Set("email", "ana@example.com")

	rr := postForm(t, srv.routes(), "/login", form)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
	assertContains(t, rr.Body.String(), "Informe e-mail e senha.", `value="ana@example.com"`)
}

func TestPagesAreNotGated(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	for _, path := range []string{"/", "/products"} {
		rr := get(t, h, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200 without session, got %d", path, rr.Code)
		}
		assertContains(t, rr.Body.String(), `href="/login"`)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := postForm(t, srv.routes(), "/logout", url.Values{})
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("unexpected logout response %d %q", rr.Code, rr.Header().Get("Location"))
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookies)
	}
}
