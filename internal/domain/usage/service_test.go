package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type memStore struct {
	events  []Event
	failAll bool
	inits   int
	reads   int
}

func (m *memStore) Append(_ context.Context, event *Event) error {
	if m.failAll {
		return errors.New("backend down")
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *memStore) ReadAll(_ context.Context) ([]Event, error) {
	m.reads++
	if m.failAll {
		return nil, errors.New("backend down")
	}
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *memStore) Initialize(_ context.Context) error {
	if m.failAll {
		return errors.New("backend down")
	}
	m.inits++
	return nil
}

func (m *memStore) Backend() string { return "memory" }

func newTestService(store Store) *Service {
	return NewService(store, zerolog.Nop())
}

func event(id, userID string, prompt, completion int, ts time.Time, persona string) Event {
	return Event{
		ID:               id,
		UserID:           userID,
		UserName:         "User " + userID,
		Timestamp:        ts,
		Model:            "llama-3.1-8b-instant",
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
		Persona:          persona,
	}
}

func TestRecordTotalsInvariant(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	// 10 chars -> 3 tokens, 5 chars -> 2 tokens
	got, ok := svc.Record(context.Background(), RecordInput{
		UserID:         "u1",
		UserName:       "User U1",
		Model:          "llama-3.1-8b-instant",
		PromptText:     "0123456789",
		CompletionText: "01234",
	})
	if !ok {
		t.Fatal("expected append to succeed")
	}

	if got.PromptTokens != 3 || got.CompletionTokens != 2 {
		t.Fatalf("unexpected token estimates: %+v", got)
	}
	if got.TotalTokens != got.PromptTokens+got.CompletionTokens {
		t.Fatalf("total tokens %d != prompt %d + completion %d", got.TotalTokens, got.PromptTokens, got.CompletionTokens)
	}
	if got.Persona != DefaultPersona {
		t.Fatalf("expected default persona, got %q", got.Persona)
	}
	if got.ID == "" {
		t.Fatal("expected generated event id")
	}
	if len(store.events) != 1 {
		t.Fatalf("expected 1 appended event, got %d", len(store.events))
	}
}

func TestRecordSwallowsAppendFailure(t *testing.T) {
	svc := newTestService(&memStore{failAll: true})

	// Must not panic or surface the error; the chat response already went out.
	got, ok := svc.Record(context.Background(), RecordInput{UserID: "u1", PromptText: "hello"})
	if got == nil {
		t.Fatal("expected event to still be built")
	}
	if ok {
		t.Fatal("expected append failure to be reported")
	}
}

func TestTotalScenarioA(t *testing.T) {
	store := &memStore{events: []Event{
		event("e1", "u1", 10, 5, time.Now().UTC(), "p1"),
	}}
	svc := newTestService(store)

	total := svc.Total(context.Background())
	if total.TotalTokens != 15 || total.TotalRequests != 1 || total.TotalUsers != 1 {
		t.Fatalf("unexpected totals: %+v", total)
	}
	if total.TotalPromptTokens != 10 || total.TotalCompletionTokens != 5 {
		t.Fatalf("unexpected prompt/completion split: %+v", total)
	}
}

func TestUsersAndDailyScenarioB(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{events: []Event{
		event("e1", "u1", 10, 5, now.AddDate(0, 0, -1), "p1"),
		event("e2", "u1", 20, 5, now, "p1"),
	}}
	svc := newTestService(store)

	users := svc.Users(context.Background())
	if len(users) != 1 {
		t.Fatalf("expected 1 user row, got %d", len(users))
	}
	if users[0].TotalTokens != 40 || users[0].RequestCount != 2 {
		t.Fatalf("unexpected user summary: %+v", users[0])
	}
	if !users[0].LastUsed.Equal(now) {
		t.Fatalf("lastUsed = %v, want %v", users[0].LastUsed, now)
	}

	daily := svc.Daily(context.Background(), 7)
	if len(daily) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(daily))
	}
	sum := 0
	nonZeroDays := 0
	for _, d := range daily {
		sum += d.TotalTokens
		if d.RequestCount > 0 {
			nonZeroDays++
		}
	}
	if sum != 40 || nonZeroDays != 2 {
		t.Fatalf("daily sum = %d across %d active days, want 40 across 2", sum, nonZeroDays)
	}
}

func TestUserTotalsConserved(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{events: []Event{
		event("e1", "u1", 10, 5, now, "p1"),
		event("e2", "u2", 7, 3, now, "p1"),
		event("e3", "u2", 1, 1, now, "p2"),
		event("e4", "u3", 100, 50, now, "p2"),
	}}
	svc := newTestService(store)

	eventSum := 0
	for _, e := range store.events {
		eventSum += e.TotalTokens
	}

	userSum := 0
	for _, u := range svc.Users(context.Background()) {
		userSum += u.TotalTokens
	}

	if userSum != eventSum {
		t.Fatalf("user summary total %d != event total %d", userSum, eventSum)
	}
}

func TestPersonaScenarioC(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{events: []Event{
		event("e1", "u1", 5, 5, now, "p2"),
		event("e2", "u1", 20, 10, now, "p1"),
	}}
	svc := newTestService(store)

	personas := svc.Persona(context.Background())
	if len(personas) != 2 {
		t.Fatalf("expected 2 persona rows, got %d", len(personas))
	}
	if personas[0].Persona != "p1" || personas[0].TotalTokens != 30 {
		t.Fatalf("unexpected first row: %+v", personas[0])
	}
	if personas[1].Persona != "p2" || personas[1].TotalTokens != 10 {
		t.Fatalf("unexpected second row: %+v", personas[1])
	}
}

func TestDailyEmptyStoreScenarioD(t *testing.T) {
	svc := newTestService(&memStore{})

	daily := svc.Daily(context.Background(), 7)
	if len(daily) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(daily))
	}
	for i, d := range daily {
		if d.TotalTokens != 0 || d.RequestCount != 0 {
			t.Fatalf("bucket %d not zero: %+v", i, d)
		}
		if i > 0 {
			prev, _ := time.Parse("2006-01-02", daily[i-1].Date)
			cur, _ := time.Parse("2006-01-02", d.Date)
			if !cur.Equal(prev.AddDate(0, 0, 1)) {
				t.Fatalf("dates not strictly increasing by one day: %s -> %s", daily[i-1].Date, d.Date)
			}
		}
	}
}

func TestHourlyAlways24Buckets(t *testing.T) {
	now := time.Now()
	store := &memStore{events: []Event{
		event("e1", "u1", 4, 4, now, "p1"),
	}}
	svc := newTestService(store)

	hourly := svc.Hourly(context.Background())
	if len(hourly) != 24 {
		t.Fatalf("expected 24 buckets, got %d", len(hourly))
	}
	total := 0
	for hour, h := range hourly {
		if h.Hour != hour {
			t.Fatalf("bucket %d has hour %d", hour, h.Hour)
		}
		total += h.RequestCount
	}
	if total != 1 {
		t.Fatalf("expected 1 request across buckets, got %d", total)
	}
	if hourly[now.Local().Hour()].TotalTokens != 8 {
		t.Fatalf("event not folded into local hour bucket %d: %+v", now.Local().Hour(), hourly)
	}
}

func TestRecordsMostRecentFirst(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{events: []Event{
		event("old", "u1", 1, 1, now.Add(-2*time.Hour), "p1"),
		event("new", "u1", 1, 1, now, "p1"),
		event("mid", "u1", 1, 1, now.Add(-time.Hour), "p1"),
	}}
	svc := newTestService(store)

	records := svc.Records(context.Background(), 2)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "new" || records[1].ID != "mid" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
}

func TestReadFailureDegradesToZeroViews(t *testing.T) {
	svc := newTestService(&memStore{failAll: true})
	ctx := context.Background()

	if total := svc.Total(ctx); total.TotalRequests != 0 || total.TotalUsers != 0 {
		t.Fatalf("expected zero totals on read failure: %+v", total)
	}
	if users := svc.Users(ctx); len(users) != 0 {
		t.Fatalf("expected no user rows, got %d", len(users))
	}
	if daily := svc.Daily(ctx, 5); len(daily) != 5 {
		t.Fatalf("expected seeded daily buckets, got %d", len(daily))
	}
	if hourly := svc.Hourly(ctx); len(hourly) != 24 {
		t.Fatalf("expected 24 hourly buckets, got %d", len(hourly))
	}
}

func TestOverviewSharesOneRead(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{events: []Event{
		event("e1", "u1", 10, 5, now, "p1"),
	}}
	svc := newTestService(store)

	overview := svc.Overview(context.Background(), 30)
	if overview.Total.TotalTokens != 15 {
		t.Fatalf("unexpected overview total: %+v", overview.Total)
	}
	if len(overview.Users) != 1 || len(overview.Daily) != 30 || len(overview.Hourly) != 24 || len(overview.Persona) != 1 {
		t.Fatalf("unexpected overview shape: users=%d daily=%d hourly=%d persona=%d",
			len(overview.Users), len(overview.Daily), len(overview.Hourly), len(overview.Persona))
	}
	if store.reads != 1 {
		t.Fatalf("overview must fold all five views over one read, got %d reads", store.reads)
	}
}

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"0123456789", 3},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
