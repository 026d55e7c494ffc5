package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal(`$.status`, "ok")).
		End()
}

func TestSignup_RedirectsAndSetsCookie(t *testing.T) {
	s, _ := newTestServer(t)

	result := apitest.New().
		Handler(s.Handler()).
		Post("/signup").
		FormData("username", "alice").
		FormData("email", "alice@example.com").
		FormData("password", "password123").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		CookiePresent("access_token").
		End()

	cookie := readCookie(t, result.Response, "access_token")
	if cookie == nil || len(cookie.Value) == 0 {
		t.Fatal("expected access_token cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
}

// The cookie set by signup authenticates a protected request as-is.
func TestSignup_CookieAuthenticatesProtectedRoute(t *testing.T) {
	s, _ := newTestServer(t)

	result := apitest.New().
		Handler(s.Handler()).
		Post("/signup").
		FormData("username", "alice").
		FormData("email", "alice@example.com").
		FormData("password", "password123").
		Expect(t).
		Status(http.StatusSeeOther).
		End()

	cookie := readCookie(t, result.Response, "access_token")
	if cookie == nil {
		t.Fatal("expected access_token cookie")
	}

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Cookie(cookie.Name, cookie.Value).
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestSignup_ShortPassword(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Post("/signup").
		FormData("username", "alice").
		FormData("email", "alice@example.com").
		FormData("password", "short").
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestSignup_DuplicateUsername(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")

	apitest.New().
		Handler(s.Handler()).
		Post("/signup").
		FormData("username", "alice").
		FormData("email", "other@example.com").
		FormData("password", "password123").
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestLogin_SuccessRedirects(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")

	apitest.New().
		Handler(s.Handler()).
		Post("/login").
		FormData("username", "alice").
		FormData("password", "password123").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		CookiePresent("access_token").
		End()
}

func TestLogin_WrongPassword(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")

	apitest.New().
		Handler(s.Handler()).
		Post("/login").
		FormData("username", "alice").
		FormData("password", "wrong-password").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(bodyContains("Incorrect username or password")).
		End()
}

func TestLogin_UnknownUserSameMessage(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Post("/login").
		FormData("username", "ghost").
		FormData("password", "password123").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(bodyContains("Incorrect username or password")).
		End()
}

func TestLogout_ClearsCookie(t *testing.T) {
	s, _ := newTestServer(t)

	result := apitest.New().
		Handler(s.Handler()).
		Get("/logout").
		Expect(t).
		Status(http.StatusSeeOther).
		Header("Location", "/").
		End()

	cookie := readCookie(t, result.Response, "access_token")
	if cookie == nil {
		t.Fatal("expected access_token cookie in response")
	}
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
}

func TestHome_Anonymous(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Get("/").
		Expect(t).
		Status(http.StatusOK).
		Assert(bodyContains("Log in to manage your todos")).
		End()
}

func TestHome_WithCookie(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")
	token := mintToken(t, s, "alice", time.Hour)

	apitest.New().
		Handler(s.Handler()).
		Get("/").
		Cookie("access_token", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(bodyContains("Signed in as alice")).
		End()
}

// The home page ignores the Authorization header: only the cookie carries
// identity on the browser path.
func TestHome_IgnoresAuthorizationHeader(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")
	token := mintToken(t, s, "alice", time.Hour)

	apitest.New().
		Handler(s.Handler()).
		Get("/").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		Assert(bodyContains("Log in to manage your todos")).
		End()
}

func TestHome_BadCookieRendersAnonymous(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Get("/").
		Cookie("access_token", "Bearer not-a-token").
		Expect(t).
		Status(http.StatusOK).
		Assert(bodyContains("Log in to manage your todos")).
		End()
}

func TestProtected_NoToken(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Expect(t).
		Status(http.StatusUnauthorized).
		Header("WWW-Authenticate", "Bearer").
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()
}

func TestProtected_BadToken(t *testing.T) {
	s, _ := newTestServer(t)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Cookie("access_token", "Bearer garbage").
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()
}

func TestProtected_ExpiredToken(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")
	token := mintToken(t, s, "alice", -time.Minute)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Cookie("access_token", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()
}

func TestProtected_UnknownSubject(t *testing.T) {
	s, _ := newTestServer(t)
	token := mintToken(t, s, "ghost", time.Hour)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Cookie("access_token", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		Assert(jsonpath.Equal(`$.error`, "could not validate credentials")).
		End()
}

func TestProtected_AuthorizationHeaderWorks(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")
	token := mintToken(t, s, "alice", time.Hour)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusOK).
		End()
}

// A cookie, even an invalid one, takes priority over a valid Authorization
// header on protected routes.
func TestProtected_CookieWinsOverHeader(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")
	token := mintToken(t, s, "alice", time.Hour)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Cookie("access_token", "Bearer garbage").
		Header("Authorization", "Bearer "+token).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

// An unprefixed cookie value is accepted verbatim.
func TestProtected_UnprefixedCookie(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")
	token := mintToken(t, s, "alice", time.Hour)

	apitest.New().
		Handler(s.Handler()).
		Get("/todos").
		Cookie("access_token", token).
		Expect(t).
		Status(http.StatusOK).
		End()
}
