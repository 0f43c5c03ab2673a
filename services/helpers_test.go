package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sahilchouksey/event-registration-api/config"
	"github.com/sahilchouksey/event-registration-api/database"
	"github.com/sahilchouksey/event-registration-api/model"
	"github.com/sahilchouksey/event-registration-api/utils/cache"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the schema migrated
func newTestDB(t *testing.T) *gorm.DB {
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
	return store.GetDB()
}

// clockAt returns a fixed clock at midday UTC on date
func clockAt(t *testing.T, date string) FixedClock {
	t.Helper()
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", date, err)
	}
	return FixedClock{At: day.Add(12 * time.Hour)}
}

// stepClock reports a fixed date and a timestamp that advances one minute per call
type stepClock struct {
	mu   sync.Mutex
	next time.Time
}

func newStepClock(start time.Time) *stepClock {
	return &stepClock{next: start}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Minute)
	return now
}

func (c *stepClock) Today() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next.Format(model.DateLayout)
}

// mustCreateEvent stores an event and fails the test on error
func mustCreateEvent(t *testing.T, events *EventService, name string, category model.Category, eventDate, start, end string) uint {
	t.Helper()
	id, err := events.CreateEvent(context.Background(), EventInput{
		Name:                  name,
		Category:              category,
		EventDate:             eventDate,
		RegistrationStartDate: start,
		RegistrationEndDate:   end,
	})
	if err != nil {
		t.Fatalf("Failed to create event %q: %v", name, err)
	}
	return id
}

// mustRegister stores a registration and fails the test on error
func mustRegister(t *testing.T, registrations *RegistrationService, email string, eventID uint) uint {
	t.Helper()
	id, err := registrations.CreateRegistration(context.Background(), RegistrationInput{
		FullName:    "Test Person",
		Email:       email,
		CollegeName: "Test College",
		Department:  "CS",
		EventID:     eventID,
	})
	if err != nil {
		t.Fatalf("Failed to register %s for event %d: %v", email, eventID, err)
	}
	return id
}

// memoryCache is an in-process stand-in for the Redis availability cache
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return value, nil
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	value, err := m.Get(ctx, key)
	m.mu.Lock()
	m.gets++
	if err == nil {
		m.hits++
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), dest)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = string(raw)
	return nil
}

func (m *memoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.values[key], 10, 64)
	n++
	m.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}
