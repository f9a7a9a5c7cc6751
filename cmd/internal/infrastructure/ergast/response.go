package ergast

import "strconv"

const (
	unknownCircuit = "Unknown Circuit"
	unknown        = "Unknown"
)

type Race struct {
	Round    int
	Name     string
	Circuit  string
	Locality string
	Country  string
	Date     string
	Time     string
	URL      string
}

type DriverStanding struct {
	Position        int
	Points          float64
	Wins            int
	DriverID        string
	Name            string
	Code            string
	Nationality     string
	Team            string
	TeamNationality string
}

type ConstructorStanding struct {
	Position    int
	Points      float64
	Wins        int
	Name        string
	Nationality string
}

type mrResponse struct {
	MRData *struct {
		RaceTable      raceTable      `json:"RaceTable"`
		StandingsTable standingsTable `json:"StandingsTable"`
	} `json:"MRData"`
}

type raceTable struct {
	Season string         `json:"season"`
	Races  []raceResponse `json:"Races"`
}

type raceResponse struct {
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	URL      string `json:"url"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Circuit  struct {
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
}

type standingsTable struct {
	Season         string `json:"season"`
	StandingsLists []struct {
		DriverStandings []struct {
			Position string `json:"position"`
			Points   string `json:"points"`
			Wins     string `json:"wins"`
			Driver   struct {
				DriverID    string `json:"driverId"`
				Code        string `json:"code"`
				GivenName   string `json:"givenName"`
				FamilyName  string `json:"familyName"`
				Nationality string `json:"nationality"`
			} `json:"Driver"`
			Constructors []constructorResponse `json:"Constructors"`
		} `json:"DriverStandings"`
		ConstructorStandings []struct {
			Position    string              `json:"position"`
			Points      string              `json:"points"`
			Wins        string              `json:"wins"`
			Constructor constructorResponse `json:"Constructor"`
		} `json:"ConstructorStandings"`
	} `json:"StandingsLists"`
}

type constructorResponse struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

func (t *raceTable) toRaces() []*Race {
	races := make([]*Race, len(t.Races))
	for i, r := range t.Races {
		races[i] = &Race{
			Round:    atoi(r.Round),
			Name:     r.RaceName,
			Circuit:  orDefault(r.Circuit.CircuitName, unknownCircuit),
			Locality: orDefault(r.Circuit.Location.Locality, unknown),
			Country:  orDefault(r.Circuit.Location.Country, unknown),
			Date:     r.Date,
			Time:     r.Time,
			URL:      r.URL,
		}
	}
	return races
}

func (t *standingsTable) toDrivers() []*DriverStanding {
	if len(t.StandingsLists) == 0 {
		return []*DriverStanding{}
	}

	list := t.StandingsLists[0].DriverStandings
	standings := make([]*DriverStanding, len(list))
	for i, d := range list {
		team, teamNationality := unknown, unknown
		if len(d.Constructors) > 0 {
			team = orDefault(d.Constructors[0].Name, unknown)
			teamNationality = orDefault(d.Constructors[0].Nationality, unknown)
		}

		standings[i] = &DriverStanding{
			Position:        atoi(d.Position),
			Points:          atof(d.Points),
			Wins:            atoi(d.Wins),
			DriverID:        d.Driver.DriverID,
			Name:            d.Driver.GivenName + " " + d.Driver.FamilyName,
			Code:            d.Driver.Code,
			Nationality:     d.Driver.Nationality,
			Team:            team,
			TeamNationality: teamNationality,
		}
	}
	return standings
}

func (t *standingsTable) toConstructors() []*ConstructorStanding {
	if len(t.StandingsLists) == 0 {
		return []*ConstructorStanding{}
	}

	list := t.StandingsLists[0].ConstructorStandings
	standings := make([]*ConstructorStanding, len(list))
	for i, c := range list {
		standings[i] = &ConstructorStanding{
			Position:    atoi(c.Position),
			Points:      atof(c.Points),
			Wins:        atoi(c.Wins),
			Name:        c.Constructor.Name,
			Nationality: c.Constructor.Nationality,
		}
	}
	return standings
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Ergast encodes every number as a string; bad values read as zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
