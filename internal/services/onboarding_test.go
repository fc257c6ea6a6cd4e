package services

import (
	"context"
	"net/http"
	"net/url"
	"testing"
)

func TestProfilesStatusFilterPassThrough(t *testing.T) {
	var gotQuery url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/onboarding/profiles", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeOK(w, []any{})
	})
	svc := NewOnboardingService(newTestAPI(t, mux))

	if _, err := svc.Profiles(context.Background(), OnboardingPending); err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if gotQuery.Get("status") != "pending" {
		t.Fatalf("query = %v", gotQuery)
	}

	// "all" is the default and is not sent at all.
	if _, err := svc.Profiles(context.Background(), OnboardingAll); err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if gotQuery.Has("status") {
		t.Fatalf("status=all must not be sent, query = %v", gotQuery)
	}
}

func TestProfileAvailabilityMixedCasing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/onboarding/profiles", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, []map[string]any{{
			"id":           "p1",
			"phone_number": "+905551112233",
			"name":         "Ada",
			"surname":      "Y",
			"primary_goal": "LGS",
			"availability": []map[string]any{
				{"id": "a1", "dayOfWeek": 1, "startTime": "17:00", "endTime": "19:00", "intensity": "high"},
				{"id": "a2", "day_of_week": 6, "start_time": "09:00", "end_time": "12:00", "priority": "low"},
			},
		}})
	})
	svc := NewOnboardingService(newTestAPI(t, mux))

	profiles, err := svc.Profiles(context.Background(), OnboardingAll)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("profiles = %d", len(profiles))
	}
	p := profiles[0]
	if p.PrimaryGoal != "LGS" {
		t.Fatalf("profile = %+v", p)
	}
	if len(p.Availability) != 2 {
		t.Fatalf("availability = %+v", p.Availability)
	}
	a, b := p.Availability[0], p.Availability[1]
	if a.DayOfWeek != 1 || a.StartTime != "17:00" || a.Intensity != "high" {
		t.Fatalf("camel slot = %+v", a)
	}
	if b.DayOfWeek != 6 || b.EndTime != "12:00" || b.Priority != "low" {
		t.Fatalf("snake slot = %+v", b)
	}
}

func TestProfilesNullDataBecomesEmptyList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/onboarding/profiles", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	})
	svc := NewOnboardingService(newTestAPI(t, mux))
	profiles, err := svc.Profiles(context.Background(), OnboardingCompleted)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Fatalf("expected empty slice, got %#v", profiles)
	}
}
