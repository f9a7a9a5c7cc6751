package contract

// Status values reported by the proxy widgets that degrade to fallback data.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type WeatherResponse struct {
	Current  *CurrentWeather `json:"current"`
	Daily    []*DailyWeather `json:"daily"`
	Location *WeatherPoint   `json:"location"`
}

type CurrentWeather struct {
	Temperature   int     `json:"temp"`
	Humidity      int     `json:"humidity"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection int     `json:"wind_direction"`
}

type TemperatureRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type DailyWeather struct {
	Date        string            `json:"date"`
	Temp        *TemperatureRange `json:"temp"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
}

type WeatherPoint struct {
	Name      string  `json:"name,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Timezone  string  `json:"timezone"`
}

type WeatherQuery struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

type NewsQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=all business entertainment general health science sports technology"`
	Country  string `query:"country" validate:"omitempty,len=2,alpha"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

type NewsArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url,omitempty"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Category    string `json:"category"`
}

type NewsResponse struct {
	Articles     []*NewsArticle `json:"articles"`
	TotalResults int            `json:"total_results"`
	Category     string         `json:"category"`
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	LastUpdated  string         `json:"last_updated"`
}

type F1Query struct {
	Type string `query:"type" validate:"omitempty,oneof=schedule standings constructors nextRace"`
	Year string `query:"year" validate:"omitempty,len=4,numeric"`
}

type F1Race struct {
	Round    int    `json:"round"`
	Name     string `json:"name"`
	Circuit  string `json:"circuit"`
	Location string `json:"location"`
	Country  string `json:"country"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	StartsAt string `json:"starts_at"`
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
}

type F1DriverStanding struct {
	Position    int     `json:"position"`
	Driver      string  `json:"driver"`
	Code        string  `json:"code"`
	Nationality string  `json:"nationality"`
	Team        string  `json:"team"`
	Points      float64 `json:"points"`
	Wins        int     `json:"wins"`
}

type F1ConstructorStanding struct {
	Position    int     `json:"position"`
	Team        string  `json:"team"`
	Nationality string  `json:"nationality"`
	Points      float64 `json:"points"`
	Wins        int     `json:"wins"`
}

type F1Response struct {
	Type                 string                   `json:"type"`
	Season               string                   `json:"season"`
	Races                []*F1Race                `json:"races,omitempty"`
	Standings            []*F1DriverStanding      `json:"standings,omitempty"`
	ConstructorStandings []*F1ConstructorStanding `json:"constructor_standings,omitempty"`
	NextRace             *F1Race                  `json:"next_race,omitempty"`
	Status               string                   `json:"status"`
	Message              string                   `json:"message,omitempty"`
	LastUpdated          string                   `json:"last_updated"`
}

type CurrencyQuery struct {
	Base    string `query:"base" validate:"omitempty,iso4217"`
	Symbols string `query:"symbols" validate:"omitempty,max=200"`
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type CurrencyRate struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Change float64 `json:"change"`
}

type CurrencyResponse struct {
	Base     string          `json:"base"`
	BaseName string          `json:"base_name"`
	Date     string          `json:"date"`
	Rates    []*CurrencyRate `json:"rates"`
}

type CurrenciesResponse struct {
	Currencies map[string]string `json:"currencies"`
}
