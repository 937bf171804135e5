package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/shrey-c/BookRecommender/internal/config"
	"github.com/shrey-c/BookRecommender/internal/testutil"
	"github.com/shrey-c/BookRecommender/models"
)

const (
	testSecret = "test-secret"
	adminEmail = "admin@vjti.com"
)

func newTestServer(t *testing.T, name string) (*Server, http.Handler) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret, AdminEmail: adminEmail},
	}
	s := NewServer(cfg, d)
	return s, s.Routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

// loginAs registers the address if needed and logs in, returning a live
// session token. A bare signed JWT is not enough to pass the middleware;
// the session flag in the users table must be set too.
func loginAs(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": email, "password": password,
	})
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rec.Code, rec.Body)
	}
	return decodeBody[map[string]string](t, rec)["token"]
}

func TestRegisterLoginLogout(t *testing.T) {
	_, h := newTestServer(t, "apilogin")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "alice@example.com", "password": "s3cret1", "age": 24,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body)
	}
	// The registration response must not leak restricted columns.
	if body := rec.Body.String(); strings.Contains(body, "password") || strings.Contains(body, "age") {
		t.Fatalf("restricted column leaked: %s", body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "s3cret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body)
	}
	token := decodeBody[map[string]string](t, rec)["token"]
	if token == "" {
		t.Fatalf("empty token")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", rec.Code, rec.Body)
	}
}

func TestRegister_Validation(t *testing.T) {
	_, h := newTestServer(t, "apivalid")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "not-an-email", "password": "s3cret1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid email accepted: %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "ok@example.com", "password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password accepted: %d", rec.Code)
	}
}

func TestAdminGate(t *testing.T) {
	_, h := newTestServer(t, "apigate")

	// Unauthenticated request.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}

	// A signed token for an address with no logged-in session.
	ghostToken := testutil.Token(t, testSecret, "ghost@example.com")
	rec = doJSON(t, h, http.MethodGet, "/api/v1/users", ghostToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("sessionless token: %d", rec.Code)
	}

	// Logged in but not the librarian address.
	userToken := loginAs(t, h, "bob@example.com", "s3cret1")
	rec = doJSON(t, h, http.MethodGet, "/api/v1/users", userToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/v1/transactions", userToken, map[string]any{
		"email": "bob@example.com", "isbn": "x",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin issue: %d", rec.Code)
	}

	// The librarian address passes.
	adminToken := loginAs(t, h, adminEmail, "s3cret1")
	rec = doJSON(t, h, http.MethodGet, "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: %d %s", rec.Code, rec.Body)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	_, h := newTestServer(t, "apirevoke")

	adminToken := loginAs(t, h, adminEmail, "s3cret1")
	rec := doJSON(t, h, http.MethodGet, "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("before logout: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", rec.Code, rec.Body)
	}

	// The token is still cryptographically valid but the session is gone.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("admin route after logout: %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/recommendations/most-rated", adminToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("user route after logout: %d", rec.Code)
	}

	// Logging back in restores access.
	adminToken = loginAs(t, h, adminEmail, "s3cret1")
	rec = doJSON(t, h, http.MethodGet, "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("after re-login: %d %s", rec.Code, rec.Body)
	}
}

func TestLendingFlow(t *testing.T) {
	_, h := newTestServer(t, "apilend")
	adminToken := loginAs(t, h, adminEmail, "s3cret1")

	// Admin creates borrower and book.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/users", adminToken, map[string]any{
		"email": "alice@example.com", "password": "s3cret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: %d %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/v1/books", adminToken, map[string]any{
		"isbn": "isbn-1", "title": "Book One", "author": "A. Author",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create book: %d %s", rec.Code, rec.Body)
	}

	// Issuing against a missing borrower is a referential failure.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/transactions", adminToken, map[string]any{
		"email": "ghost@example.com", "isbn": "isbn-1",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("ghost issue: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/transactions", adminToken, map[string]any{
		"email": "alice@example.com", "isbn": "isbn-1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue: %d %s", rec.Code, rec.Body)
	}
	issued := decodeBody[models.Transaction](t, rec)
	if issued.BookName != "Book One" || issued.Returned {
		t.Fatalf("unexpected transaction: %+v", issued)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/transactions/pending", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending: %d", rec.Code)
	}
	pending := decodeBody[pendingResponse](t, rec)
	if pending.Count != 1 || len(pending.Transactions) != 1 {
		t.Fatalf("pending view: %+v", pending)
	}

	// Return, then return again: both succeed.
	url := fmt.Sprintf("/api/v1/transactions/%d/return", issued.ID)
	for i := 0; i < 2; i++ {
		rec = doJSON(t, h, http.MethodPatch, url, adminToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("return #%d: %d %s", i+1, rec.Code, rec.Body)
		}
		got := decodeBody[models.Transaction](t, rec)
		if !got.Returned {
			t.Fatalf("return #%d: not returned: %+v", i+1, got)
		}
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/transactions/pending", adminToken, nil)
	pending = decodeBody[pendingResponse](t, rec)
	if pending.Count != 0 || len(pending.Transactions) != 0 {
		t.Fatalf("pending after return: %+v", pending)
	}

	rec = doJSON(t, h, http.MethodPatch, "/api/v1/transactions/999/return", adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", rec.Code)
	}

	// The ledger has no delete route.
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/transactions/1", adminToken, nil)
	if rec.Code != http.StatusMethodNotAllowed && rec.Code != http.StatusNotFound {
		t.Fatalf("transaction delete should not exist: %d", rec.Code)
	}
}

func TestUserListExcludesRestrictedColumns(t *testing.T) {
	_, h := newTestServer(t, "apiusers")
	adminToken := loginAs(t, h, adminEmail, "s3cret1")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "alice@example.com", "password": "s3cret1", "age": 30, "location": "Mumbai",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list users: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, restricted := range []string{"password", "age", "location", "authenticated", "Mumbai"} {
		if strings.Contains(body, restricted) {
			t.Fatalf("restricted column %q leaked: %s", restricted, body)
		}
	}
}

func TestRecommendationEndpoints(t *testing.T) {
	_, h := newTestServer(t, "apirec")
	adminToken := loginAs(t, h, adminEmail, "s3cret1")
	userToken := loginAs(t, h, "alice@example.com", "s3cret1")

	// Recommendations require a session.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/recommendations/most-rated", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous recommendations: %d", rec.Code)
	}

	// Seed catalog and one rating through the API.
	for _, isbn := range []string{"isbn-a", "isbn-b"} {
		rec = doJSON(t, h, http.MethodPost, "/api/v1/books", adminToken, map[string]any{
			"isbn": isbn, "title": "Book " + isbn,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", isbn, rec.Code)
		}
	}
	rec = doJSON(t, h, http.MethodPut, "/api/v1/books/isbn-a/rating", userToken, map[string]any{"rating": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("rate: %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/recommendations/most-rated?n=2", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("most-rated: %d", rec.Code)
	}
	books := decodeBody[[]models.Book](t, rec)
	if len(books) != 1 || books[0].ISBN != "isbn-a" {
		t.Fatalf("most-rated: %+v", books)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/recommendations/random?n=2", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("random: %d", rec.Code)
	}
	books = decodeBody[[]models.Book](t, rec)
	if len(books) != 2 {
		t.Fatalf("random cardinality: %+v", books)
	}

	// More than the catalog holds.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/recommendations/random?n=3", userToken, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("random overflow: %d %s", rec.Code, rec.Body)
	}
}
