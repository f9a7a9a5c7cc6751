package service

import (
	"context"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/infrastructure/ergast"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	F1TypeSchedule     = "schedule"
	F1TypeStandings    = "standings"
	F1TypeConstructors = "constructors"
	F1TypeNextRace     = "nextRace"

	RaceUpcoming  = "upcoming"
	RaceLive      = "live"
	RaceCompleted = "completed"

	// A race counts as live for this long after lights out.
	raceDuration = 2 * time.Hour
)

type F1Provider interface {
	Schedule(ctx context.Context, season string) (string, []*ergast.Race, error)
	NextRace(ctx context.Context) (string, *ergast.Race, error)
	DriverStandings(ctx context.Context, season string) (string, []*ergast.DriverStanding, error)
	ConstructorStandings(ctx context.Context, season string) (string, []*ergast.ConstructorStanding, error)
}

type DefaultF1Service struct {
	Provider F1Provider
	Validate *validator.Validate
	Now      func() time.Time
}

func NewF1Service(provider F1Provider, validate *validator.Validate) *DefaultF1Service {
	return &DefaultF1Service{
		Provider: provider,
		Validate: validate,
		Now:      time.Now,
	}
}

// GetF1Data answers with fallback data and status "error" when the
// upstream fails, so the widget keeps rendering.
func (f *DefaultF1Service) GetF1Data(ctx context.Context, query *contract.F1Query) (*contract.F1Response, apierror.ErrorResponse) {
	utils.Sanitize(query)
	if valerr := f.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := f.Now().UTC()
	kind := query.Type
	if kind == "" {
		kind = F1TypeSchedule
	}
	year := query.Year
	if year == "" {
		year = strconv.Itoa(now.Year())
	}

	resp, err := f.fetch(ctx, kind, year, now)
	if err != nil {
		log.Errorf("failed to fetch F1 %s data: %v", kind, err)
		resp = fallbackF1Data(now)
		resp.Status = contract.StatusError
		resp.Message = "Failed to fetch F1 data, showing fallback data"
	} else {
		resp.Status = contract.StatusOK
	}

	resp.Type = kind
	resp.LastUpdated = now.Format(time.RFC3339)
	return resp, nil
}

func (f *DefaultF1Service) fetch(ctx context.Context, kind, year string, now time.Time) (*contract.F1Response, error) {
	switch kind {
	case F1TypeStandings:
		season, standings, err := f.Provider.DriverStandings(ctx, year)
		if err != nil {
			return nil, err
		}

		resp := &contract.F1Response{Season: orDefault(season, year), Standings: make([]*contract.F1DriverStanding, len(standings))}
		for i, s := range standings {
			resp.Standings[i] = toDriverStanding(s)
		}
		return resp, nil

	case F1TypeConstructors:
		season, standings, err := f.Provider.ConstructorStandings(ctx, year)
		if err != nil {
			return nil, err
		}

		resp := &contract.F1Response{Season: orDefault(season, year), ConstructorStandings: make([]*contract.F1ConstructorStanding, len(standings))}
		for i, s := range standings {
			resp.ConstructorStandings[i] = &contract.F1ConstructorStanding{
				Position:    s.Position,
				Team:        s.Name,
				Nationality: s.Nationality,
				Points:      s.Points,
				Wins:        s.Wins,
			}
		}
		return resp, nil

	case F1TypeNextRace:
		season, race, err := f.Provider.NextRace(ctx)
		if err != nil {
			return nil, err
		}

		resp := &contract.F1Response{Season: orDefault(season, year)}
		if race != nil {
			resp.NextRace = toF1Race(race, now)
		}
		return resp, nil

	default:
		season, races, err := f.Provider.Schedule(ctx, year)
		if err != nil {
			return nil, err
		}

		resp := &contract.F1Response{Season: orDefault(season, year), Races: make([]*contract.F1Race, len(races))}
		for i, r := range races {
			resp.Races[i] = toF1Race(r, now)
		}
		return resp, nil
	}
}

// RaceStatus is "live" from the scheduled start until raceDuration later.
// A race without a start time is assumed to start at midnight UTC.
func RaceStatus(date, clock string, now time.Time) string {
	start, ok := raceStart(date, clock)
	if !ok {
		return RaceUpcoming
	}

	switch {
	case now.Before(start):
		return RaceUpcoming
	case now.Before(start.Add(raceDuration)):
		return RaceLive
	default:
		return RaceCompleted
	}
}

func raceStart(date, clock string) (time.Time, bool) {
	if clock == "" {
		clock = "00:00:00Z"
	}

	start, err := time.Parse(time.RFC3339, date+"T"+clock)
	if err != nil {
		return time.Time{}, false
	}
	return start.UTC(), true
}

func toF1Race(r *ergast.Race, now time.Time) *contract.F1Race {
	race := &contract.F1Race{
		Round:    r.Round,
		Name:     r.Name,
		Circuit:  r.Circuit,
		Location: r.Locality,
		Country:  r.Country,
		Date:     r.Date,
		Time:     r.Time,
		Status:   RaceStatus(r.Date, r.Time, now),
		URL:      r.URL,
	}
	if start, ok := raceStart(r.Date, r.Time); ok {
		race.StartsAt = start.Format(time.RFC3339)
	}
	return race
}

func toDriverStanding(s *ergast.DriverStanding) *contract.F1DriverStanding {
	return &contract.F1DriverStanding{
		Position:    s.Position,
		Driver:      s.Name,
		Code:        s.Code,
		Nationality: s.Nationality,
		Team:        s.Team,
		Points:      s.Points,
		Wins:        s.Wins,
	}
}

func fallbackF1Data(now time.Time) *contract.F1Response {
	races := []*ergast.Race{
		{Round: 1, Name: "Bahrain Grand Prix", Circuit: "Bahrain International Circuit", Locality: "Sakhir", Country: "Bahrain", Date: "2024-03-02", Time: "15:00:00Z", URL: "https://www.formula1.com/en/racing/2024/Bahrain.html"},
		{Round: 2, Name: "Saudi Arabian Grand Prix", Circuit: "Jeddah Corniche Circuit", Locality: "Jeddah", Country: "Saudi Arabia", Date: "2024-03-09", Time: "17:00:00Z", URL: "https://www.formula1.com/en/racing/2024/Saudi_Arabia.html"},
		{Round: 3, Name: "Australian Grand Prix", Circuit: "Albert Park Circuit", Locality: "Melbourne", Country: "Australia", Date: "2024-03-24", Time: "05:00:00Z", URL: "https://www.formula1.com/en/racing/2024/Australia.html"},
	}
	standings := []*ergast.DriverStanding{
		{Position: 1, Points: 25, Wins: 1, DriverID: "max_verstappen", Name: "Max Verstappen", Code: "VER", Nationality: "Dutch", Team: "Red Bull Racing"},
		{Position: 2, Points: 18, Wins: 0, DriverID: "sergio_perez", Name: "Sergio Perez", Code: "PER", Nationality: "Mexican", Team: "Red Bull Racing"},
	}

	resp := &contract.F1Response{
		Season:    "2024",
		Races:     make([]*contract.F1Race, len(races)),
		Standings: make([]*contract.F1DriverStanding, len(standings)),
	}
	for i, r := range races {
		resp.Races[i] = toF1Race(r, now)
	}
	for i, s := range standings {
		resp.Standings[i] = toDriverStanding(s)
	}
	return resp
}
