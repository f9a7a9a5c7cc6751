package ergast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	srv := newServer(t, map[string]string{
		"/2024.json": `{"MRData":{"RaceTable":{"season":"2024","Races":[
			{"round":"1","raceName":"Bahrain Grand Prix","date":"2024-03-02","time":"15:00:00Z",
			 "Circuit":{"circuitName":"Bahrain International Circuit","Location":{"locality":"Sakhir","country":"Bahrain"}}},
			{"round":"2","raceName":"Mystery Grand Prix","date":"2024-03-09"}
		]}}}`,
	})

	season, races, err := NewClient(srv.URL, time.Second).Schedule(context.Background(), "2024")
	require.NoError(t, err)
	assert.Equal(t, "2024", season)
	require.Len(t, races, 2)
	assert.Equal(t, 1, races[0].Round)
	assert.Equal(t, "Sakhir", races[0].Locality)
	assert.Equal(t, unknownCircuit, races[1].Circuit)
	assert.Equal(t, unknown, races[1].Country)
}

func TestDriverStandings(t *testing.T) {
	t.Parallel()

	srv := newServer(t, map[string]string{
		"/2024/driverStandings.json": `{"MRData":{"StandingsTable":{"season":"2024","StandingsLists":[{"DriverStandings":[
			{"position":"1","points":"437.5","wins":"9","Driver":{"driverId":"max_verstappen","code":"VER","givenName":"Max","familyName":"Verstappen","nationality":"Dutch"},
			 "Constructors":[{"name":"Red Bull","nationality":"Austrian"}]}
		]}]}}}`,
	})

	_, standings, err := NewClient(srv.URL, time.Second).DriverStandings(context.Background(), "2024")
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "Max Verstappen", standings[0].Name)
	assert.InDelta(t, 437.5, standings[0].Points, 0.001)
	assert.Equal(t, "Red Bull", standings[0].Team)
}

func TestNextRace_SeasonOver(t *testing.T) {
	t.Parallel()

	srv := newServer(t, map[string]string{
		"/current/next.json": `{"MRData":{"RaceTable":{"season":"2024","Races":[]}}}`,
	})

	season, race, err := NewClient(srv.URL, time.Second).NextRace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024", season)
	assert.Nil(t, race)
}

func TestFetch_InvalidPayload(t *testing.T) {
	t.Parallel()

	srv := newServer(t, map[string]string{"/2024.json": `{}`})

	_, _, err := NewClient(srv.URL, time.Second).Schedule(context.Background(), "2024")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
