package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/event-registration-api/config"
	"github.com/sahilchouksey/event-registration-api/database"
	"github.com/sahilchouksey/event-registration-api/services"
	"github.com/sahilchouksey/event-registration-api/utils/cache"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminEmail    = "admin@events.io"
	testAdminPassword = "s3cret-passw0rd"
)

// testServer is a fully wired app backed by in-memory SQLite and memoryCache
type testServer struct {
	app   *fiber.App
	cache *memoryCache
}

func newTestServer(t *testing.T, withCache bool) *testServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := database.Open(&config.Environment{
		GO_ENV:      "production",
		DB_DRIVER:   "sqlite",
		SQLITE_PATH: "file:" + name + "?mode=memory&cache=shared&_foreign_keys=1",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	env := &config.Environment{
		GO_ENV:                 "production",
		JWT_SECRET:             "router-test-secret",
		JWT_ISSUER:             "event-registration-api",
		JWT_EXPIRY:             time.Hour,
		ADMIN_EMAIL:            testAdminEmail,
		ADMIN_PASSWORD_HASH:    string(hash),
		ALLOWED_ORIGINS:        "*",
		AVAILABILITY_CACHE_TTL: time.Minute,
	}

	server := &testServer{app: fiber.New()}
	var routeCache Cache
	if withCache {
		server.cache = newMemoryCache()
		routeCache = server.cache
	}

	clock := services.FixedClock{At: time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)}
	if err := SetupRoutes(server.app, store, env, routeCache, clock); err != nil {
		t.Fatalf("SetupRoutes failed: %v", err)
	}
	return server
}

// envelope mirrors response.Response with the data left raw
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// do sends a request and returns the status and the raw body
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte, http.Header) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp.StatusCode, raw, resp.Header
}

// doJSON sends a request and decodes the JSON envelope
func (s *testServer) doJSON(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	status, raw, _ := s.do(t, method, path, token, body)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("%s %s returned non JSON body %q: %v", method, path, raw, err)
	}
	return status, env
}

// decodeData unmarshals the envelope payload into dest
func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("Failed to decode data %s: %v", env.Data, err)
	}
}

// login returns an admin access token
func (s *testServer) login(t *testing.T) string {
	t.Helper()
	status, env := s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	if status != fiber.StatusOK {
		t.Fatalf("Login failed with %d: %+v", status, env.Error)
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, env, &data)
	return data.AccessToken
}

// createEvent creates an event through the admin API and returns its ID
func (s *testServer) createEvent(t *testing.T, token, name, category, eventDate, start, end string) uint {
	t.Helper()
	status, env := s.doJSON(t, http.MethodPost, "/api/v1/admin/events", token, map[string]string{
		"event_name":              name,
		"category":                category,
		"event_date":              eventDate,
		"registration_start_date": start,
		"registration_end_date":   end,
	})
	if status != fiber.StatusCreated {
		t.Fatalf("Create event %q failed with %d: %+v", name, status, env.Error)
	}

	var event struct {
		ID uint `json:"id"`
	}
	decodeData(t, env, &event)
	return event.ID
}

func registrationBody(email string, eventID uint) map[string]interface{} {
	return map[string]interface{}{
		"full_name":    "Jane Doe",
		"email":        email,
		"college_name": "State University",
		"department":   "Computer Science",
		"event_id":     eventID,
	}
}

// memoryCache implements Cache in process
type memoryCache struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}, expires: map[string]time.Time{}}
}

func (m *memoryCache) lookup(key string) (string, bool) {
	if at, ok := m.expires[key]; ok && time.Now().After(at) {
		delete(m.values, key)
		delete(m.expires, key)
	}
	value, ok := m.values[key]
	return value, ok
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.lookup(key)
	if !ok {
		return "", cache.ErrNotFound
	}
	return value, nil
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	value, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), dest)
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, string(raw), expiration)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case string:
		m.values[key] = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		m.values[key] = string(raw)
	}
	if expiration > 0 {
		m.expires[key] = time.Now().Add(expiration)
	} else {
		delete(m.expires, key)
	}
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		delete(m.expires, key)
	}
	return nil
}

func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, _ := m.lookup(key)
	n, _ := strconv.ParseInt(current, 10, 64)
	n++
	m.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (m *memoryCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		m.expires[key] = time.Now().Add(expiration)
	}
	return nil
}

func (m *memoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.expires[key]
	if !ok {
		return -1, nil
	}
	return time.Until(at), nil
}
