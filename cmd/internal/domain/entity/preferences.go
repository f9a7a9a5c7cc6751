package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Widgets lists every dashboard widget that can be toggled.
var Widgets = []string{"tasks", "weather", "finance", "news", "f1", "notes", "currency", "calendar", "pomodoro"}

var (
	DefaultMonthlyBudget  = decimal.NewFromInt(2000)
	DefaultCurrency       = "USD"
	DefaultNewsCategories = []string{"technology", "business", "health"}
)

type WidgetToggles map[string]bool

func DefaultWidgets() WidgetToggles {
	widgets := make(WidgetToggles, len(Widgets))
	for _, w := range Widgets {
		widgets[w] = true
	}
	return widgets
}

type UserPreferences struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement:false"`
	UserID                int64           `gorm:"not null;uniqueIndex"` // References: users(id)
	Theme                 Theme           `gorm:"not null;default:dark"`
	MonthlyBudget         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency              string          `gorm:"not null;size:3;default:USD"`
	WeatherLocation       *string
	NewsCategories        datatypes.JSONSlice[string]
	DashboardLayout       datatypes.JSON
	EnabledWidgets        datatypes.JSONType[WidgetToggles]
	GoogleCalendarEnabled bool   `gorm:"not null;default:false"`
	GoogleCalendarSync    bool   `gorm:"not null;default:false"`
	GoogleCalendarID      string `gorm:"not null;default:''"`
	CreatedAt             int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             int64  `gorm:"not null;autoUpdateTime:false"`
}

func NewDefaultPreferences(id, userID, now int64) *UserPreferences {
	return &UserPreferences{
		ID:             id,
		UserID:         userID,
		Theme:          ThemeDark,
		MonthlyBudget:  DefaultMonthlyBudget,
		Currency:       DefaultCurrency,
		NewsCategories: append(datatypes.JSONSlice[string]{}, DefaultNewsCategories...),
		EnabledWidgets: datatypes.NewJSONType(DefaultWidgets()),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Widgets returns the stored toggles merged over the defaults, so widgets
// added after the row was written show up enabled.
func (p *UserPreferences) Widgets() WidgetToggles {
	merged := DefaultWidgets()
	for k, v := range p.EnabledWidgets.Data() {
		merged[k] = v
	}
	return merged
}
