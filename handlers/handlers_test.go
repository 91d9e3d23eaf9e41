package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonexus/site/api"
	"github.com/leonexus/site/catalog"
	"github.com/leonexus/site/config"
	"github.com/leonexus/site/db"
	"github.com/leonexus/site/jwt"
	"github.com/leonexus/site/session"
)

const testSecret = "test-secret-0123456789"

// backendCall is one request seen by the fake backend.
type backendCall struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type testEnv struct {
	app      *fiber.App
	h        *Handler
	mux      *http.ServeMux
	sessions *session.Store

	mu    sync.Mutex
	calls []backendCall
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(conn))
	db.SetForTesting(conn)
	t.Cleanup(func() { conn.Close() })

	env := &testEnv{mux: http.NewServeMux()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		env.mu.Lock()
		env.calls = append(env.calls, backendCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		env.mu.Unlock()
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		env.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		APIBaseURL: srv.URL + "/api",
		APITimeout: 2 * time.Second,
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
	}
	client := api.New(cfg.APIBaseURL, cfg.APITimeout)
	cat, err := catalog.New(client)
	require.NoError(t, err)
	t.Cleanup(cat.Close)

	env.sessions = session.NewStore(conn)
	env.h = New(cfg, client, cat, env.sessions)
	env.h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	env.app = fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	env.h.Register(env.app)
	return env
}

// handle registers a canned JSON response for a backend path.
func (e *testEnv) handle(pattern string, status int, body string) {
	e.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

func (e *testEnv) called(method, path string) (backendCall, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.calls {
		if c.Method == method && c.Path == path {
			return c, true
		}
	}
	return backendCall{}, false
}

// signIn creates a session for u and returns the auth cookie for it.
func (e *testEnv) signIn(t *testing.T, u api.User, token string) *http.Cookie {
	t.Helper()
	sess, err := e.sessions.Create(context.Background(), token, u, time.Hour)
	require.NoError(t, err)
	signed, err := jwt.GenerateToken(sess.ID, u, testSecret, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: "auth_token", Value: signed}
}

type reqOpt func(*http.Request)

func withCookie(c *http.Cookie) reqOpt {
	return func(r *http.Request) { r.AddCookie(c) }
}

func withHTMX() reqOpt {
	return func(r *http.Request) { r.Header.Set("HX-Request", "true") }
}

func (e *testEnv) do(t *testing.T, method, target string, form url.Values, opts ...reqOpt) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, opt := range opts {
		opt(req)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var (
	testDealer = api.User{ID: 7, Username: "dealer", FirstName: "Dan", LastName: "Kariuki", Role: api.RoleDealer}
	testBuyer  = api.User{ID: 9, Username: "buyer", FirstName: "Bea", LastName: "Otieno", Role: api.RoleBuyer}
)

const carJSON = `{"id":5,"dealer":{"id":2,"name":"Nairobi Motors"},"category":{"id":1,"name":"SUV"},
	"title":"2019 Toyota Prado","make":"Toyota","model":"Prado","location":"Nairobi","year":2019,
	"price":"6500000.00","mileage":42000,"transmission":"AUTOMATIC","fuel_type":"DIESEL",
	"condition":"Used","published":true,"created_at":"2025-05-01T10:00:00Z","images":[],
	"average_rating":4.5,"review_count":2}`

func TestSessionMiddleware_BadCookieIsCleared(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/categories/", http.StatusOK, `[]`)

	resp, body := env.do(t, http.MethodGet, "/sell", nil, withCookie(&http.Cookie{Name: "auth_token", Value: "garbage"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sign in")

	c := findCookie(resp, "auth_token")
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
}

func TestSessionMiddleware_DeletedSessionIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	signed, err := jwt.GenerateToken("missing-session", testDealer, testSecret, time.Hour)
	require.NoError(t, err)

	resp, _ := env.do(t, http.MethodGet, "/dashboard", nil, withCookie(&http.Cookie{Name: "auth_token", Value: signed}))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?next=%2Fdashboard", resp.Header.Get("Location"))
}

func TestAuthRequired_Redirects(t *testing.T) {
	env := newTestEnv(t)

	t.Run("plain request", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, "/buyer-dashboard", nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/signin?next=%2Fbuyer-dashboard", resp.Header.Get("Location"))
	})

	t.Run("htmx request uses the current page", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/cars/5/favorite", nil, withHTMX(), func(r *http.Request) {
			r.Header.Set("HX-Current-URL", "http://example.com/cars/5?img=1")
		})
		assert.Equal(t, "/signin?next=%2Fcars%2F5%3Fimg%3D1", resp.Header.Get("HX-Redirect"))
	})
}

func TestRoleGuards_RedirectToOwnDashboard(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/dashboard", nil, withCookie(env.signIn(t, testBuyer, "buyer-token")))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/buyer-dashboard", resp.Header.Get("Location"))

	resp, _ = env.do(t, http.MethodGet, "/buyer-dashboard", nil, withCookie(env.signIn(t, testDealer, "dealer-token")))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestSignIn_Success(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/auth/login/", http.StatusOK,
		`{"token":"backend-token","user_id":7,"username":"dealer","first_name":"Dan","last_name":"Kariuki","role":"DEALER"}`)

	resp, body := env.do(t, http.MethodPost, "/signin", url.Values{
		"username": {"dealer"},
		"password": {"secret123"},
	}, withHTMX())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome back, Dan Kariuki")
	assert.Contains(t, body, `data-redirect="/dashboard"`)

	c := findCookie(resp, "auth_token")
	require.NotNil(t, c)
	claims, err := jwt.ValidateToken(c.Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)

	sess, err := env.sessions.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", sess.Token)
}

func TestSignIn_HonorsLocalNextOnly(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/auth/login/", http.StatusOK, `{"token":"t","user_id":9,"username":"buyer","role":"BUYER"}`)

	_, body := env.do(t, http.MethodPost, "/signin", url.Values{
		"username": {"buyer"}, "password": {"pw"}, "next": {"/cars/5"},
	})
	assert.Contains(t, body, `data-redirect="/cars/5"`)

	_, body = env.do(t, http.MethodPost, "/signin", url.Values{
		"username": {"buyer"}, "password": {"pw"}, "next": {"https://evil.example"},
	})
	assert.Contains(t, body, `data-redirect="/buyer-dashboard"`)

	_, body = env.do(t, http.MethodPost, "/signin", url.Values{
		"username": {"buyer"}, "password": {"pw"}, "next": {"/</script><script>alert(1)</script>"},
	})
	assert.Contains(t, body, `data-redirect="/buyer-dashboard"`)
	assert.NotContains(t, body, "alert(1)")
}

func TestSignIn_BackendRejects(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/auth/login/", http.StatusBadRequest, `{"non_field_errors":["Invalid credentials"]}`)

	resp, body := env.do(t, http.MethodPost, "/signin", url.Values{
		"username": {"dealer"}, "password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
	assert.Nil(t, findCookie(resp, "auth_token"))
}

func TestSignIn_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.do(t, http.MethodPost, "/signin", url.Values{"password": {"x"}})
	assert.Contains(t, body, "Username or email is required")

	_, body = env.do(t, http.MethodPost, "/signin", url.Values{"username": {"x"}})
	assert.Contains(t, body, "Password is required")
}

func TestSignUp_Validation(t *testing.T) {
	env := newTestEnv(t)
	base := url.Values{
		"username":  {"newbie"},
		"email":     {"newbie@example.com"},
		"password":  {"longenough"},
		"password2": {"longenough"},
	}
	tests := []struct {
		name   string
		field  string
		value  string
		expect string
	}{
		{"missing username", "username", "", "Username is required"},
		{"bad email", "email", "not-an-email", "Enter a valid email address"},
		{"short password", "password", "short", "Password must be at least 8 characters"},
		{"mismatch", "password2", "different1", "Passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			for k, v := range base {
				form[k] = v
			}
			form.Set(tt.field, tt.value)
			_, body := env.do(t, http.MethodPost, "/signup", form)
			assert.Contains(t, body, tt.expect)
		})
	}
	_, ok := env.called(http.MethodPost, "/api/auth/register/")
	assert.False(t, ok)
}

func TestSignUp_CreatesProfileAndSession(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/auth/register/", http.StatusCreated, `{"message":"User registered successfully"}`)
	env.handle("/api/auth/login/", http.StatusOK,
		`{"token":"fresh","user_id":11,"username":"newbie","first_name":"New","last_name":"Bie","role":"BUYER"}`)
	env.handle("/api/buyers/create/", http.StatusCreated, `{"id":3}`)

	resp, body := env.do(t, http.MethodPost, "/signup", url.Values{
		"role":       {"BUYER"},
		"first_name": {"New"},
		"last_name":  {"Bie"},
		"username":   {"newbie"},
		"email":      {"newbie@example.com"},
		"phone":      {"0712345678"},
		"password":   {"longenough"},
		"password2":  {"longenough"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `data-redirect="/buyer-dashboard"`)
	require.NotNil(t, findCookie(resp, "auth_token"))

	reg, ok := env.called(http.MethodPost, "/api/auth/register/")
	require.True(t, ok)
	assert.Contains(t, reg.Body, `"role":"BUYER"`)

	profile, ok := env.called(http.MethodPost, "/api/buyers/create/")
	require.True(t, ok)
	assert.Equal(t, "Token fresh", profile.Auth)
	assert.Contains(t, profile.Body, `"phone":"0712345678"`)
}

func TestSignUp_ProfileFailureDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/auth/register/", http.StatusCreated, `{}`)
	env.handle("/api/auth/login/", http.StatusOK, `{"token":"fresh","user_id":12,"username":"d","role":"DEALER"}`)
	env.handle("/api/dealers/create/", http.StatusBadRequest, `{"detail":"Profile exists"}`)

	_, body := env.do(t, http.MethodPost, "/signup", url.Values{
		"role": {"DEALER"}, "username": {"d"}, "email": {"d@example.com"},
		"password": {"longenough"}, "password2": {"longenough"},
	})
	assert.Contains(t, body, `data-redirect="/dashboard"`)
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/auth/logout/", http.StatusOK, `{}`)
	cookie := env.signIn(t, testBuyer, "buyer-token")

	resp, _ := env.do(t, http.MethodPost, "/signout", nil, withCookie(cookie))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	call, ok := env.called(http.MethodPost, "/api/auth/logout/")
	require.True(t, ok)
	assert.Equal(t, "Token buyer-token", call.Auth)

	claims, err := jwt.ValidateToken(cookie.Value, testSecret)
	require.NoError(t, err)
	_, err = env.sessions.Get(context.Background(), claims.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCars_FullPageAndFragment(t *testing.T) {
	env := newTestEnv(t)
	var gotQuery url.Values
	env.mux.HandleFunc("/api/cars/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		io.WriteString(w, `{"count":1,"next":null,"previous":null,"results":[`+carJSON+`]}`)
	})
	env.handle("/api/categories/", http.StatusOK, `[{"id":1,"name":"SUV","slug":"suv"}]`)

	resp, body := env.do(t, http.MethodGet, "/cars?make=Toyota&min_price=1,000,000", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "2019 Toyota Prado")
	assert.Equal(t, "Toyota", gotQuery.Get("make"))
	assert.Equal(t, "1000000", gotQuery.Get("min_price"))

	resp, body = env.do(t, http.MethodGet, "/cars?layout=list", nil, withHTMX())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `id="car-results"`)
	layout := findCookie(resp, "car_layout")
	require.NotNil(t, layout)
	assert.Equal(t, "list", layout.Value)
}

func TestCars_BackendDown(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/", http.StatusInternalServerError, `{"detail":"boom"}`)

	resp, body := env.do(t, http.MethodGet, "/cars", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "boom")
}

func TestSuggestions(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/search-suggestions/", http.StatusOK, `[{"type":"make","value":"Toyota"}]`)

	_, body := env.do(t, http.MethodGet, "/cars/suggestions?search=to", nil, withHTMX())
	assert.Contains(t, body, "Toyota")

	_, body = env.do(t, http.MethodGet, "/cars/suggestions?search=t", nil, withHTMX())
	assert.NotContains(t, body, "Toyota")
}

func TestCarDetail(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/", http.StatusOK, carJSON)
	env.handle("/api/cars/5/reviews/", http.StatusOK,
		`[{"id":1,"user":{"id":9,"username":"buyer","first_name":"Bea"},"rating":5,"comment":"Solid","created_at":"2025-05-02T10:00:00Z"}]`)
	env.handle("/api/dealerships/", http.StatusOK,
		`[{"id":3,"name":"Nairobi Motors","locations":["Nairobi","Thika"],"verified":true}]`)
	env.handle("/api/favorites/", http.StatusOK, `[{"id":4,"car":{"id":5}}]`)

	resp, body := env.do(t, http.MethodGet, "/cars/5", nil, withCookie(env.signIn(t, testBuyer, "buyer-token")))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "2019 Toyota Prado")
	assert.Contains(t, body, "KES 6,500,000")
	assert.Contains(t, body, "Solid")
	assert.Contains(t, body, "Nairobi, Thika")
	assert.Contains(t, body, "♥ Saved")
	assert.Contains(t, body, "Write a review")
}

func TestCarDetail_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/404/", http.StatusNotFound, `{"detail":"Not found."}`)
	env.handle("/api/cars/404/reviews/", http.StatusNotFound, `{"detail":"Not found."}`)
	env.handle("/api/dealerships/", http.StatusOK, `[]`)

	resp, body := env.do(t, http.MethodGet, "/cars/404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Not found.")
}

func TestToggleFavorite(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/toggle-favorite/", http.StatusOK, `{"favorited":true}`)

	_, body := env.do(t, http.MethodPost, "/cars/5/favorite", nil, withHTMX(), withCookie(env.signIn(t, testBuyer, "buyer-token")))
	assert.Contains(t, body, `id="favorite-button"`)
	assert.Contains(t, body, "♥ Saved")

	call, ok := env.called(http.MethodPost, "/api/cars/5/toggle-favorite/")
	require.True(t, ok)
	assert.Equal(t, "Token buyer-token", call.Auth)
}

func TestRemoveFavorite(t *testing.T) {
	env := newTestEnv(t)
	env.mux.HandleFunc("/api/favorites/4/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	env.handle("/api/favorites/", http.StatusOK, `[]`)

	_, body := env.do(t, http.MethodDelete, "/favorites/4", nil, withHTMX(), withCookie(env.signIn(t, testBuyer, "buyer-token")))
	assert.Contains(t, body, `id="favorites"`)
	_, ok := env.called(http.MethodDelete, "/api/favorites/4/")
	assert.True(t, ok)
}

func TestCreateReview(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/reviews/create/", http.StatusCreated, `{"id":2,"rating":4}`)
	env.handle("/api/cars/5/reviews/", http.StatusOK, `[]`)
	cookie := env.signIn(t, testBuyer, "buyer-token")

	_, body := env.do(t, http.MethodPost, "/cars/5/reviews", url.Values{"rating": {"9"}}, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, "Rating must be between 1 and 5")
	_, ok := env.called(http.MethodPost, "/api/cars/5/reviews/create/")
	assert.False(t, ok)

	_, body = env.do(t, http.MethodPost, "/cars/5/reviews", url.Values{"rating": {"4"}, "comment": {" Nice "}}, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, `id="reviews"`)
	call, ok := env.called(http.MethodPost, "/api/cars/5/reviews/create/")
	require.True(t, ok)
	assert.JSONEq(t, `{"rating":4,"comment":"Nice"}`, call.Body)
}

func TestEditReview_OnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/reviews/", http.StatusOK,
		`[{"id":1,"user":{"id":9},"rating":5,"comment":"Mine"},{"id":2,"user":{"id":99},"rating":1,"comment":"Theirs"}]`)
	cookie := env.signIn(t, testBuyer, "buyer-token")

	resp, body := env.do(t, http.MethodGet, "/cars/5/reviews/1/edit", nil, withHTMX(), withCookie(cookie))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Mine")

	resp, _ = env.do(t, http.MethodGet, "/cars/5/reviews/2/edit", nil, withHTMX(), withCookie(cookie))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateAndDeleteReview_OnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/reviews/", http.StatusOK,
		`[{"id":1,"user":{"id":9},"rating":5,"comment":"Mine"},{"id":2,"user":{"id":99},"rating":1,"comment":"Theirs"}]`)
	env.handle("/api/cars/6/reviews/", http.StatusOK, `[]`)
	env.handle("/api/reviews/1/", http.StatusOK, `{"id":1,"rating":4}`)
	env.mux.HandleFunc("/api/reviews/2/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	cookie := env.signIn(t, testBuyer, "buyer-token")
	form := url.Values{"rating": {"4"}, "comment": {"Edited"}}

	resp, _ := env.do(t, http.MethodPost, "/cars/5/reviews/2", form, withHTMX(), withCookie(cookie))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = env.do(t, http.MethodDelete, "/cars/5/reviews/2", nil, withHTMX(), withCookie(cookie))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, ok := env.called(http.MethodPut, "/api/reviews/2/")
	assert.False(t, ok)
	_, ok = env.called(http.MethodDelete, "/api/reviews/2/")
	assert.False(t, ok)

	// Review 1 belongs to car 5, not car 6.
	resp, _ = env.do(t, http.MethodPost, "/cars/6/reviews/1", form, withHTMX(), withCookie(cookie))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_, ok = env.called(http.MethodPut, "/api/reviews/1/")
	assert.False(t, ok)

	resp, body := env.do(t, http.MethodPost, "/cars/5/reviews/1", form, withHTMX(), withCookie(cookie))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="reviews"`)
	call, ok := env.called(http.MethodPut, "/api/reviews/1/")
	require.True(t, ok)
	assert.JSONEq(t, `{"rating":4,"comment":"Edited"}`, call.Body)
}

func TestReviews_AnonymousUnauthorizedHasNoExpiryFlash(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/reviews/", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`)

	resp, _ := env.do(t, http.MethodGet, "/cars/5/reviews", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Nil(t, findCookie(resp, "flash"))
}

func TestCarDetail_ReviewsFallBackToCarPayload(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/cars/5/", http.StatusOK, strings.Replace(carJSON, `"images":[]`,
		`"images":[],"reviews":[{"id":1,"user":{"id":9,"username":"buyer"},"rating":4,"comment":"Embedded review"}]`, 1))
	env.handle("/api/cars/5/reviews/", http.StatusBadGateway, `{"detail":"down"}`)
	env.handle("/api/dealerships/", http.StatusOK, `[]`)

	resp, body := env.do(t, http.MethodGet, "/cars/5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Embedded review")
	assert.NotContains(t, body, "No reviews yet")
}

func TestDealerDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/dealers/cars/", http.StatusOK, `[`+carJSON+`]`)
	env.handle("/api/dealerships/me/", http.StatusNotFound, `{"detail":"Not found."}`)

	resp, body := env.do(t, http.MethodGet, "/dashboard", nil, withCookie(env.signIn(t, testDealer, "dealer-token")))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome back, Dan Kariuki")
	assert.Contains(t, body, "Create dealership")
	assert.Contains(t, body, "2019 Toyota Prado")
}

func TestDealerDashboard_ExpiredBackendToken(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/dealers/cars/", http.StatusUnauthorized, `{"detail":"Invalid token."}`)
	env.handle("/api/dealerships/me/", http.StatusUnauthorized, `{"detail":"Invalid token."}`)
	cookie := env.signIn(t, testDealer, "stale")

	resp, _ := env.do(t, http.MethodGet, "/dashboard", nil, withCookie(cookie))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?next=%2Fdashboard", resp.Header.Get("Location"))
	require.NotNil(t, findCookie(resp, "flash"))

	claims, err := jwt.ValidateToken(cookie.Value, testSecret)
	require.NoError(t, err)
	_, err = env.sessions.Get(context.Background(), claims.SessionID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCreateCar(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/dealers/cars/create/", http.StatusCreated, carJSON)
	cookie := env.signIn(t, testDealer, "dealer-token")

	_, body := env.do(t, http.MethodPost, "/dashboard/cars", url.Values{"make": {"Toyota"}}, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, "Title is required")

	form := url.Values{
		"title": {"2019 Toyota Prado"}, "make": {"Toyota"}, "model": {"Prado"},
		"year": {"2019"}, "price": {"6,500,000"}, "location": {"Nairobi"},
		"transmission": {"automatic"}, "fuel_type": {"diesel"}, "condition": {"Good"},
		"published": {"true"},
	}
	_, body = env.do(t, http.MethodPost, "/dashboard/cars", form, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, "Listing saved")
	assert.Contains(t, body, `data-redirect="/dashboard"`)

	call, ok := env.called(http.MethodPost, "/api/dealers/cars/create/")
	require.True(t, ok)
	assert.Contains(t, call.Body, `"price":"6500000"`)
	assert.Contains(t, call.Body, `"transmission":"AUTOMATIC"`)
}

func TestDeleteCar_RerendersInventory(t *testing.T) {
	env := newTestEnv(t)
	env.mux.HandleFunc("/api/dealers/cars/5/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	env.handle("/api/dealers/cars/", http.StatusOK, `[]`)

	_, body := env.do(t, http.MethodDelete, "/dashboard/cars/5", nil, withHTMX(), withCookie(env.signIn(t, testDealer, "dealer-token")))
	assert.Contains(t, body, `id="inventory"`)
	assert.Contains(t, body, "You have no listings yet")
}

func TestSaveDealership_CreatesWhenMissing(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/dealerships/me/", http.StatusNotFound, `{"detail":"Not found."}`)
	env.handle("/api/dealerships/create/", http.StatusCreated, `{"id":1,"name":"Prime Autos"}`)
	cookie := env.signIn(t, testDealer, "dealer-token")

	_, body := env.do(t, http.MethodPost, "/dashboard/dealership", url.Values{"name": {"Prime Autos"}}, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, "Dealership description is required")

	_, body = env.do(t, http.MethodPost, "/dashboard/dealership", url.Values{
		"name": {"Prime Autos"}, "description": {"Quality imports"}, "specialties": {"SUVs, suvs, Vans"},
	}, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, "Dealership saved")

	call, ok := env.called(http.MethodPost, "/api/dealerships/create/")
	require.True(t, ok)
	assert.Contains(t, call.Body, `"specialties":["SUVs","Vans"]`)
}

func TestDealers_FiltersCachedList(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/dealerships/", http.StatusOK,
		`[{"id":1,"name":"Prime Autos","locations":["Mombasa"]},{"id":2,"name":"Nairobi Motors","locations":["Nairobi"]}]`)

	_, body := env.do(t, http.MethodGet, "/dealers?search=mombasa", nil, withHTMX())
	assert.Contains(t, body, "Prime Autos")
	assert.NotContains(t, body, "Nairobi Motors")
}

func TestSaveProfile_RefreshesSession(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/buyers/profile/", http.StatusOK, `{"id":1,"first_name":"Beatrice","last_name":"Otieno"}`)
	cookie := env.signIn(t, testBuyer, "buyer-token")

	_, body := env.do(t, http.MethodPost, "/profile", url.Values{
		"first_name": {"Beatrice"}, "last_name": {"Otieno"}, "phone": {"0700000000"},
	}, withHTMX(), withCookie(cookie))
	assert.Contains(t, body, "Profile saved")

	call, ok := env.called(http.MethodPut, "/api/buyers/profile/")
	require.True(t, ok)
	assert.Contains(t, call.Body, `"first_name":"Beatrice"`)

	claims, err := jwt.ValidateToken(cookie.Value, testSecret)
	require.NoError(t, err)
	sess, err := env.sessions.Get(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Beatrice", sess.User.FirstName)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/categories/", http.StatusOK, `[]`)

	resp, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"database":"up"`)
	assert.Contains(t, body, `"api":"up"`)
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
}

func TestHome_DegradesWhenBackendDown(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/stats/", http.StatusInternalServerError, `{}`)
	env.handle("/api/cars/", http.StatusOK, `{"count":1,"results":[`+carJSON+`]}`)

	resp, body := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "2019 Toyota Prado")

	call, ok := env.called(http.MethodGet, "/api/cars/")
	require.True(t, ok)
	assert.NotEmpty(t, call.Path)
}

func TestSell_DealerGetsListingForm(t *testing.T) {
	env := newTestEnv(t)
	env.handle("/api/categories/", http.StatusOK, `[{"id":1,"name":"SUV","slug":"suv"}]`)

	_, body := env.do(t, http.MethodGet, "/sell", nil, withCookie(env.signIn(t, testDealer, "dealer-token")))
	assert.Contains(t, body, "List a car")
	assert.Contains(t, body, `id="sell-form-result"`)

	_, body = env.do(t, http.MethodGet, "/sell", nil)
	assert.Contains(t, body, "Become a dealer")
}
