package handlers

import (
	"testing"
	"time"

	"gg/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func postAt(t time.Time) models.Post {
	return models.Post{ID: primitive.NewObjectID(), CreatedAt: t}
}

func TestSelectOwnFeedPostsEmpty(t *testing.T) {
	feed := selectOwnFeedPosts(nil, time.Now())
	if len(feed) != 0 {
		t.Fatalf("expected empty feed, got %d entries", len(feed))
	}
	if feed == nil {
		t.Fatal("expected non-nil slice for JSON serialization")
	}
}

func TestSelectOwnFeedPostsNewestAlwaysIncluded(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	lastWeek := postAt(now.AddDate(0, 0, -7))

	feed := selectOwnFeedPosts([]models.Post{lastWeek}, now)
	if len(feed) != 1 || feed[0] != lastWeek.ID {
		t.Fatalf("newest post must be included regardless of age, got %v", feed)
	}
}

func TestSelectOwnFeedPostsTodayOnly(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	newest := postAt(now.Add(-time.Hour))
	earlierToday := postAt(now.Add(-11 * time.Hour))
	yesterday := postAt(now.AddDate(0, 0, -1))

	feed := selectOwnFeedPosts([]models.Post{newest, earlierToday, yesterday}, now)

	if len(feed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed))
	}
	if feed[0] != newest.ID || feed[1] != earlierToday.ID {
		t.Fatalf("unexpected feed order: %v", feed)
	}
	for _, id := range feed {
		if id == yesterday.ID {
			t.Fatal("yesterday's post must be excluded")
		}
	}
}

func TestSelectOwnFeedPostsKeepsInputOrder(t *testing.T) {
	now := time.Now()
	first := postAt(now.Add(-time.Minute))
	second := postAt(now.Add(-2 * time.Minute))
	third := postAt(now.Add(-3 * time.Minute))

	feed := selectOwnFeedPosts([]models.Post{first, second, third}, now)
	want := []primitive.ObjectID{first.ID, second.ID, third.ID}
	if len(feed) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(feed))
	}
	for i := range want {
		if feed[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i].Hex(), feed[i].Hex())
		}
	}
}

// Decoded BSON datetimes come back in UTC. Posts created shortly after
// local midnight then carry a UTC timestamp on the previous calendar day,
// they still have to count as today.
func TestSelectOwnFeedPostsWithUTCStoredTimes(t *testing.T) {
	now := time.Date(2024, 6, 15, 1, 0, 0, 0, time.Local)
	newest := postAt(now.Add(-30 * time.Minute).UTC())
	earlierToday := postAt(now.Add(-45 * time.Minute).UTC())
	yesterday := postAt(now.Add(-2 * time.Hour).UTC())

	feed := selectOwnFeedPosts([]models.Post{newest, earlierToday, yesterday}, now)

	if len(feed) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed))
	}
	if feed[0] != newest.ID || feed[1] != earlierToday.ID {
		t.Fatalf("unexpected feed: %v", feed)
	}
}

func TestSameCalendarDayAcrossTimeZones(t *testing.T) {
	aest := time.FixedZone("AEST", 10*60*60)
	instant := time.Date(2024, 6, 15, 1, 0, 0, 0, aest)

	// Same instant, one side expressed in UTC (2024-06-14 15:00).
	if !sameCalendarDay(instant.UTC(), instant) {
		t.Fatal("one instant must land on one calendar day regardless of representation")
	}
	if !sameCalendarDay(instant, instant.UTC()) {
		t.Fatal("comparison must be symmetric")
	}
	if sameCalendarDay(instant.UTC(), instant.Add(48*time.Hour)) {
		t.Fatal("instants two days apart must not match")
	}
}

func TestSameCalendarDay(t *testing.T) {
	base := time.Date(2024, 6, 15, 0, 0, 1, 0, time.Local)
	cases := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same instant", base, base, true},
		{"same day boundaries", base, time.Date(2024, 6, 15, 23, 59, 59, 0, time.Local), true},
		{"next day", base, base.AddDate(0, 0, 1), false},
		{"same day of next month", base, base.AddDate(0, 1, 0), false},
		{"same date of next year", base, base.AddDate(1, 0, 0), false},
	}
	for _, tc := range cases {
		if got := sameCalendarDay(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: sameCalendarDay = %v, want %v", tc.name, got, tc.want)
		}
	}
}
