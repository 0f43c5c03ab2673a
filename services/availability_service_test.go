package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/sahilchouksey/event-registration-api/model"
)

func optionValues(options []Option) []string {
	values := make([]string, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return values
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAvailabilityCascade(t *testing.T) {
	db := newTestDB(t)
	clock := clockAt(t, "2026-01-20")
	events := NewEventService(db, clock)
	availability := NewAvailabilityService(db, clock)
	ctx := context.Background()

	intro := mustCreateEvent(t, events, "Intro to Go", model.CategoryOnlineWorkshop, "2026-02-01", "2026-01-10", "2026-01-25")
	alpha := mustCreateEvent(t, events, "Advanced Go", model.CategoryOnlineWorkshop, "2026-02-01", "2026-01-20", "2026-01-20")
	mustCreateEvent(t, events, "Rust Basics", model.CategoryOnlineWorkshop, "2026-01-28", "2026-01-01", "2026-01-30")
	mustCreateEvent(t, events, "Old Workshop", model.CategoryOnlineWorkshop, "2026-01-15", "2026-01-01", "2026-01-10")
	mustCreateEvent(t, events, "Summit", model.CategoryConference, "2026-03-01", "2026-01-15", "2026-02-15")
	mustCreateEvent(t, events, "Future Hack", model.CategoryHackathon, "2026-05-01", "2026-02-01", "2026-04-01")

	t.Run("categories follow table order", func(t *testing.T) {
		categories, err := availability.ActiveCategories(ctx)
		if err != nil {
			t.Fatalf("ActiveCategories failed: %v", err)
		}
		want := []string{"online_workshop", "conference"}
		if got := optionValues(categories); !equalStrings(got, want) {
			t.Fatalf("Expected categories %v, got %v", want, got)
		}
		if categories[0].Label != "Online Workshop" || categories[1].Label != "Conference" {
			t.Errorf("Unexpected labels: %+v", categories)
		}
	})

	t.Run("dates ascend and exclude closed events", func(t *testing.T) {
		dates, err := availability.ActiveDatesForCategory(ctx, model.CategoryOnlineWorkshop)
		if err != nil {
			t.Fatalf("ActiveDatesForCategory failed: %v", err)
		}
		want := []string{"2026-01-28", "2026-02-01"}
		if got := optionValues(dates); !equalStrings(got, want) {
			t.Fatalf("Expected dates %v, got %v", want, got)
		}
		if dates[1].Label != "February 1, 2026" {
			t.Errorf("Expected label %q, got %q", "February 1, 2026", dates[1].Label)
		}
	})

	t.Run("events are sorted by name", func(t *testing.T) {
		options, err := availability.ActiveEventsForCategoryAndDate(ctx, model.CategoryOnlineWorkshop, "2026-02-01")
		if err != nil {
			t.Fatalf("ActiveEventsForCategoryAndDate failed: %v", err)
		}
		want := []Option{
			{Value: strconv.FormatUint(uint64(alpha), 10), Label: "Advanced Go"},
			{Value: strconv.FormatUint(uint64(intro), 10), Label: "Intro to Go"},
		}
		if len(options) != len(want) {
			t.Fatalf("Expected %d events, got %+v", len(want), options)
		}
		for i := range want {
			if options[i] != want[i] {
				t.Errorf("Event option %d = %+v, want %+v", i, options[i], want[i])
			}
		}
	})

	t.Run("every level agrees with the one above", func(t *testing.T) {
		categories, _ := availability.ActiveCategories(ctx)
		for _, category := range categories {
			dates, err := availability.ActiveDatesForCategory(ctx, model.Category(category.Value))
			if err != nil {
				t.Fatalf("ActiveDatesForCategory(%s) failed: %v", category.Value, err)
			}
			if len(dates) == 0 {
				t.Errorf("Category %s listed without active dates", category.Value)
			}
			for _, date := range dates {
				options, err := availability.ActiveEventsForCategoryAndDate(ctx, model.Category(category.Value), date.Value)
				if err != nil {
					t.Fatalf("ActiveEventsForCategoryAndDate failed: %v", err)
				}
				if len(options) == 0 {
					t.Errorf("Date %s of %s listed without active events", date.Value, category.Value)
				}
			}
		}
	})

	t.Run("unknown inputs yield empty lists", func(t *testing.T) {
		dates, err := availability.ActiveDatesForCategory(ctx, "invalid")
		if err != nil {
			t.Fatalf("ActiveDatesForCategory failed: %v", err)
		}
		if dates == nil || len(dates) != 0 {
			t.Errorf("Expected empty non-nil dates, got %#v", dates)
		}

		hackDates, err := availability.ActiveDatesForCategory(ctx, model.CategoryHackathon)
		if err != nil {
			t.Fatalf("ActiveDatesForCategory failed: %v", err)
		}
		if len(hackDates) != 0 {
			t.Errorf("Expected no dates for a category with only upcoming events, got %v", hackDates)
		}

		options, err := availability.ActiveEventsForCategoryAndDate(ctx, model.CategoryOnlineWorkshop, "2026-01-15")
		if err != nil {
			t.Fatalf("ActiveEventsForCategoryAndDate failed: %v", err)
		}
		if options == nil || len(options) != 0 {
			t.Errorf("Expected empty non-nil events, got %#v", options)
		}
	})
}

func TestActiveCategoriesFollowCatalogChanges(t *testing.T) {
	db := newTestDB(t)
	clock := clockAt(t, "2026-01-20")
	events := NewEventService(db, clock)
	availability := NewAvailabilityService(db, clock)
	ctx := context.Background()

	expect := func(t *testing.T, want []string) {
		t.Helper()
		categories, err := availability.ActiveCategories(ctx)
		if err != nil {
			t.Fatalf("ActiveCategories failed: %v", err)
		}
		if got := optionValues(categories); !equalStrings(got, want) {
			t.Fatalf("Expected categories %v, got %v", want, got)
		}
	}

	hack := mustCreateEvent(t, events, "Campus Hack", model.CategoryHackathon, "2026-02-10", "2026-01-15", "2026-02-01")
	summit := mustCreateEvent(t, events, "Summit", model.CategoryConference, "2026-03-01", "2026-01-15", "2026-02-15")
	expect(t, []string{"hackathon", "conference"})

	t.Run("deleted event drops its category", func(t *testing.T) {
		deleted, err := events.DeleteEvent(ctx, hack)
		if err != nil || !deleted {
			t.Fatalf("DeleteEvent = %v, %v", deleted, err)
		}
		expect(t, []string{"conference"})
	})

	t.Run("window moved into the past drops its category", func(t *testing.T) {
		updated, err := events.UpdateEvent(ctx, summit, EventInput{
			Name:                  "Summit",
			Category:              model.CategoryConference,
			EventDate:             "2026-01-15",
			RegistrationStartDate: "2026-01-01",
			RegistrationEndDate:   "2026-01-10",
		})
		if err != nil || !updated {
			t.Fatalf("UpdateEvent = %v, %v", updated, err)
		}
		expect(t, []string{})
	})
}

func TestActiveCategoriesEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	availability := NewAvailabilityService(db, clockAt(t, "2026-01-20"))

	categories, err := availability.ActiveCategories(context.Background())
	if err != nil {
		t.Fatalf("ActiveCategories failed: %v", err)
	}
	if categories == nil || len(categories) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", categories)
	}
}

func TestWindowBoundariesAreInclusive(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db, clockAt(t, "2026-01-20"))
	mustCreateEvent(t, events, "Window", model.CategoryHackathon, "2026-02-01", "2026-01-10", "2026-01-25")

	cases := map[string]bool{
		"2026-01-09": false,
		"2026-01-10": true,
		"2026-01-18": true,
		"2026-01-25": true,
		"2026-01-26": false,
	}
	for today, active := range cases {
		availability := NewAvailabilityService(db, clockAt(t, today))
		categories, err := availability.ActiveCategories(context.Background())
		if err != nil {
			t.Fatalf("ActiveCategories on %s failed: %v", today, err)
		}
		if got := len(categories) == 1; got != active {
			t.Errorf("On %s expected active=%v, got categories %v", today, active, categories)
		}
	}
}

func TestAvailabilityCache(t *testing.T) {
	db := newTestDB(t)
	clock := clockAt(t, "2026-01-20")
	memory := newMemoryCache()
	events := NewEventService(db, clock).WithCache(memory)
	availability := NewAvailabilityService(db, clock).WithCache(memory, time.Minute)
	ctx := context.Background()

	mustCreateEvent(t, events, "Intro to Go", model.CategoryOnlineWorkshop, "2026-02-01", "2026-01-10", "2026-01-25")

	first, err := availability.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories failed: %v", err)
	}
	second, err := availability.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories failed: %v", err)
	}
	if !equalStrings(optionValues(first), optionValues(second)) {
		t.Errorf("Cached result %v differs from fresh %v", second, first)
	}
	if memory.hits != 1 {
		t.Errorf("Expected one cache hit, got %d", memory.hits)
	}

	mustCreateEvent(t, events, "Summit", model.CategoryConference, "2026-03-01", "2026-01-15", "2026-02-15")

	third, err := availability.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories failed: %v", err)
	}
	want := []string{"online_workshop", "conference"}
	if got := optionValues(third); !equalStrings(got, want) {
		t.Errorf("Expected %v after catalog change, got %v", want, got)
	}
}
