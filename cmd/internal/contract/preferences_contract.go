package contract

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PreferencesResponse struct {
	ID                    int64           `json:"id,string"`
	Theme                 string          `json:"theme"`
	MonthlyBudget         decimal.Decimal `json:"monthly_budget"`
	Currency              string          `json:"currency"`
	WeatherLocation       *string         `json:"weather_location"`
	NewsCategories        []string        `json:"news_categories"`
	DashboardLayout       json.RawMessage `json:"dashboard_layout,omitempty"`
	EnabledWidgets        map[string]bool `json:"enabled_widgets"`
	GoogleCalendarEnabled bool            `json:"google_calendar_enabled"`
	GoogleCalendarSync    bool            `json:"google_calendar_sync"`
	GoogleCalendarID      string          `json:"google_calendar_id,omitempty"`
	CreatedAt             string          `json:"created_at"`
	UpdatedAt             string          `json:"updated_at"`
}

// UpdatePreferencesRequest is a partial upsert, nil fields are left untouched.
type UpdatePreferencesRequest struct {
	Theme              *string          `json:"theme" validate:"omitnil,oneof=light dark system"`
	MonthlyBudget      *decimal.Decimal `json:"monthly_budget"`
	Currency           *string          `json:"currency" validate:"omitnil,iso4217"`
	WeatherLocation    *string          `json:"weather_location" validate:"omitnil,max=120"`
	NewsCategories     []string         `json:"news_categories" validate:"omitnil,max=7,nodupes,dive,oneof=business entertainment general health science sports technology"`
	DashboardLayout    json.RawMessage  `json:"dashboard_layout"`
	EnabledWidgets     map[string]bool  `json:"enabled_widgets" validate:"omitnil,dive,keys,oneof=tasks weather finance news f1 notes currency calendar pomodoro,endkeys"`
	GoogleCalendarSync *bool            `json:"google_calendar_sync"`
}
