package usage

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"kawan-server/internal/utils/idgen"
)

// Service provides usage recording and the derived read views. All views
// are pure folds over the store's full history, recomputed per query.
type Service struct {
	store Store
	log   zerolog.Logger
}

// NewService creates a new usage service
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// RecordInput carries everything known about a completed exchange.
type RecordInput struct {
	UserID         string
	UserName       string
	Model          string
	Persona        string
	PromptText     string
	CompletionText string
}

// Record builds one usage event from a completed exchange and appends it.
// Storage failures are logged and swallowed: telemetry loss is non-fatal
// and must never surface into the chat response path. Callers invoke this
// in a goroutine so the response stream is never delayed. The boolean
// reports whether the append persisted, for metrics only.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Event, bool) {
	persona := in.Persona
	if persona == "" {
		persona = DefaultPersona
	}

	promptTokens := EstimateTokens(in.PromptText)
	completionTokens := EstimateTokens(in.CompletionText)

	event := &Event{
		ID:               idgen.EventID(),
		UserID:           in.UserID,
		UserName:         in.UserName,
		Timestamp:        time.Now().UTC(),
		Model:            in.Model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Persona:          persona,
	}

	if err := s.store.Append(ctx, event); err != nil {
		s.log.Error().
			Err(err).
			Str("operation", "append").
			Str("backend", s.store.Backend()).
			Str("event_id", event.ID).
			Msg("failed to record usage event")
		return event, false
	}

	return event, true
}

// Total returns the all-history sums plus distinct user count.
func (s *Service) Total(ctx context.Context) TotalUsage {
	return aggregateTotal(s.readAll(ctx))
}

// Users returns one summary per distinct user, descending by total tokens.
func (s *Service) Users(ctx context.Context) []UserSummary {
	return aggregateUsers(s.readAll(ctx))
}

// Daily returns exactly `days` zero-seeded UTC date buckets ending today,
// ascending by date.
func (s *Service) Daily(ctx context.Context, days int) []DailyUsage {
	return aggregateDaily(s.readAll(ctx), days, time.Now().UTC())
}

// Persona returns per-persona sums, descending by total tokens.
func (s *Service) Persona(ctx context.Context) []PersonaUsage {
	return aggregatePersona(s.readAll(ctx))
}

// Hourly returns the 24 hour-of-day buckets, ascending by hour.
func (s *Service) Hourly(ctx context.Context) []HourlyUsage {
	return aggregateHourly(s.readAll(ctx))
}

// Records returns the `limit` most recent raw events, newest first.
func (s *Service) Records(ctx context.Context, limit int) []Event {
	events := s.readAll(ctx)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// Overview computes all five views over one shared read.
func (s *Service) Overview(ctx context.Context, days int) Overview {
	events := s.readAll(ctx)
	return Overview{
		Total:   aggregateTotal(events),
		Users:   aggregateUsers(events),
		Daily:   aggregateDaily(events, days, time.Now().UTC()),
		Persona: aggregatePersona(events),
		Hourly:  aggregateHourly(events),
	}
}

// Initialize ensures the backing schema exists.
func (s *Service) Initialize(ctx context.Context) error {
	return s.store.Initialize(ctx)
}

// Backend names the selected store backend.
func (s *Service) Backend() string {
	return s.store.Backend()
}

// readAll degrades store failures to an empty history so aggregation never
// errors; the gap is logged with enough context to diagnose later.
func (s *Service) readAll(ctx context.Context) []Event {
	events, err := s.store.ReadAll(ctx)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("operation", "read_all").
			Str("backend", s.store.Backend()).
			Msg("failed to read usage history, serving empty result")
		return nil
	}
	return events
}

func aggregateTotal(events []Event) TotalUsage {
	total := TotalUsage{EstimatedCostUSD: decimal.Zero}
	users := make(map[string]struct{})

	for _, e := range events {
		total.TotalPromptTokens += e.PromptTokens
		total.TotalCompletionTokens += e.CompletionTokens
		total.TotalTokens += e.TotalTokens
		total.TotalRequests++
		total.EstimatedCostUSD = total.EstimatedCostUSD.Add(CalculateCost(e.Model, e.PromptTokens, e.CompletionTokens))
		users[e.UserID] = struct{}{}
	}

	// Approximate past the Postgres backend's 1000-row read cap: it is the
	// cardinality of the read window, not an all-time distinct count.
	total.TotalUsers = len(users)
	return total
}

func aggregateUsers(events []Event) []UserSummary {
	byUser := make(map[string]*UserSummary)

	for _, e := range events {
		summary, ok := byUser[e.UserID]
		if !ok {
			summary = &UserSummary{
				UserID:   e.UserID,
				UserName: e.UserName,
				LastUsed: e.Timestamp,
			}
			byUser[e.UserID] = summary
		}

		summary.TotalPromptTokens += e.PromptTokens
		summary.TotalCompletionTokens += e.CompletionTokens
		summary.TotalTokens += e.TotalTokens
		summary.RequestCount++
		if e.Timestamp.After(summary.LastUsed) {
			summary.LastUsed = e.Timestamp
		}
	}

	summaries := make([]UserSummary, 0, len(byUser))
	for _, summary := range byUser {
		summaries = append(summaries, *summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalTokens > summaries[j].TotalTokens
	})
	return summaries
}

func aggregateDaily(events []Event, days int, now time.Time) []DailyUsage {
	if days <= 0 {
		days = 30
	}

	byDate := make(map[string]*DailyUsage, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		byDate[date] = &DailyUsage{Date: date}
	}

	for _, e := range events {
		date := e.Timestamp.UTC().Format("2006-01-02")
		daily, ok := byDate[date]
		if !ok {
			// Outside the lookback window.
			continue
		}
		daily.TotalTokens += e.TotalTokens
		daily.PromptTokens += e.PromptTokens
		daily.CompletionTokens += e.CompletionTokens
		daily.RequestCount++
	}

	result := make([]DailyUsage, 0, days)
	for _, daily := range byDate {
		result = append(result, *daily)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

func aggregatePersona(events []Event) []PersonaUsage {
	byPersona := make(map[string]*PersonaUsage)

	for _, e := range events {
		persona := e.Persona
		if persona == "" {
			persona = "unknown"
		}
		row, ok := byPersona[persona]
		if !ok {
			row = &PersonaUsage{Persona: persona}
			byPersona[persona] = row
		}
		row.TotalTokens += e.TotalTokens
		row.RequestCount++
	}

	result := make([]PersonaUsage, 0, len(byPersona))
	for _, row := range byPersona {
		result = append(result, *row)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalTokens > result[j].TotalTokens
	})
	return result
}

func aggregateHourly(events []Event) []HourlyUsage {
	result := make([]HourlyUsage, 24)
	for hour := range result {
		result[hour].Hour = hour
	}

	for _, e := range events {
		// Hour of day in the server's local zone, matching the dashboard.
		hour := e.Timestamp.Local().Hour()
		result[hour].RequestCount++
		result[hour].TotalTokens += e.TotalTokens
	}

	return result
}
