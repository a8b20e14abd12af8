package usage

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DefaultPersona is recorded when an exchange carries no persona tag.
const DefaultPersona = "asisten-umum"

// Event is one recorded chat exchange's token accounting. Events are
// append-only: nothing in the service updates or deletes them.
type Event struct {
	ID               string    `json:"id" gorm:"column:id;primaryKey"`
	UserID           string    `json:"userId" gorm:"column:user_id;not null;index"`
	UserName         string    `json:"userName" gorm:"column:user_name"`
	Timestamp        time.Time `json:"timestamp" gorm:"column:timestamp;type:timestamptz;index"`
	Model            string    `json:"model" gorm:"column:model"`
	PromptTokens     int       `json:"promptTokens" gorm:"column:prompt_tokens;not null;default:0"`
	CompletionTokens int       `json:"completionTokens" gorm:"column:completion_tokens;not null;default:0"`
	TotalTokens      int       `json:"totalTokens" gorm:"column:total_tokens;not null;default:0"`
	Persona          string    `json:"persona" gorm:"column:persona"`
}

// TableName returns the table name for Event
func (Event) TableName() string {
	return "token_usage"
}

// TotalUsage sums the whole history plus a distinct user count.
type TotalUsage struct {
	TotalPromptTokens     int             `json:"totalPromptTokens"`
	TotalCompletionTokens int             `json:"totalCompletionTokens"`
	TotalTokens           int             `json:"totalTokens"`
	TotalRequests         int             `json:"totalRequests"`
	TotalUsers            int             `json:"totalUsers"`
	EstimatedCostUSD      decimal.Decimal `json:"estimatedCostUSD"`
}

// UserSummary is one row per distinct user.
type UserSummary struct {
	UserID                string    `json:"userId"`
	UserName              string    `json:"userName"`
	TotalPromptTokens     int       `json:"totalPromptTokens"`
	TotalCompletionTokens int       `json:"totalCompletionTokens"`
	TotalTokens           int       `json:"totalTokens"`
	RequestCount          int       `json:"requestCount"`
	LastUsed              time.Time `json:"lastUsed"`
}

// DailyUsage is one row per UTC calendar date inside the lookback window.
type DailyUsage struct {
	Date             string `json:"date"`
	TotalTokens      int    `json:"totalTokens"`
	PromptTokens     int    `json:"promptTokens"`
	CompletionTokens int    `json:"completionTokens"`
	RequestCount     int    `json:"requestCount"`
}

// PersonaUsage is one row per distinct persona tag.
type PersonaUsage struct {
	Persona      string `json:"persona"`
	TotalTokens  int    `json:"totalTokens"`
	RequestCount int    `json:"requestCount"`
}

// HourlyUsage is one row per hour of day, all 24 always present.
type HourlyUsage struct {
	Hour         int `json:"hour"`
	RequestCount int `json:"requestCount"`
	TotalTokens  int `json:"totalTokens"`
}

// Overview bundles the five views computed over one shared read.
type Overview struct {
	Total   TotalUsage     `json:"total"`
	Users   []UserSummary  `json:"users"`
	Daily   []DailyUsage   `json:"daily"`
	Persona []PersonaUsage `json:"persona"`
	Hourly  []HourlyUsage  `json:"hourly"`
}

// EstimateTokens approximates a token count as ceil(characters / 4). The
// contract only requires a non-negative integer; a model-accurate tokenizer
// can be substituted without touching anything else.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}
