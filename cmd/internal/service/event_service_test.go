package service

import (
	"testing"

	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/testutil"
	"orbit/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_RequiresTitleAndStart(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, NopNotifier{}, f.validate)

	_, apierr := svc.CreateEvent(f.user, &contract.EventRequest{Title: "Standup"})
	assert.Equal(t, apierror.EventMissingFieldsError, apierr)

	_, apierr = svc.CreateEvent(f.user, &contract.EventRequest{StartDate: "2024-05-01"})
	assert.Equal(t, apierror.EventMissingFieldsError, apierr)
}

func TestEventService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, NopNotifier{}, f.validate)

	event, apierr := svc.CreateEvent(f.user, &contract.EventRequest{Title: "Standup", StartDate: "2024-05-01T09:00:00Z"})
	require.Nil(t, apierr)
	assert.Equal(t, "#3B82F6", event.Color)
	assert.Equal(t, "PERSONAL", event.Type)
	assert.False(t, event.AllDay)
	assert.Equal(t, "2024-05-01T09:00:00Z", event.StartDate)
}

func TestEventService_Filters(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, NopNotifier{}, f.validate)

	for _, req := range []*contract.EventRequest{
		{Title: "late", StartDate: "2024-05-20", Type: "WORK"},
		{Title: "early", StartDate: "2024-05-02", Type: "WORK"},
		{Title: "birthday", StartDate: "2024-05-10", Type: "BIRTHDAY"},
		{Title: "next month", StartDate: "2024-06-10", Type: "WORK"},
	} {
		_, apierr := svc.CreateEvent(f.user, req)
		require.Nil(t, apierr)
	}

	all, apierr := svc.GetEvents(f.user, &contract.EventFilter{Type: "ALL"})
	require.Nil(t, apierr)
	assert.Len(t, all, 4)
	assert.Equal(t, "early", all[0].Title)

	// A single bound is ignored
	all, apierr = svc.GetEvents(f.user, &contract.EventFilter{StartDate: "2024-06-01"})
	require.Nil(t, apierr)
	assert.Len(t, all, 4)

	may, apierr := svc.GetEvents(f.user, &contract.EventFilter{StartDate: "2024-05-01", EndDate: "2024-05-31", Type: "WORK"})
	require.Nil(t, apierr)
	require.Len(t, may, 2)
	assert.Equal(t, "early", may[0].Title)
	assert.Equal(t, "late", may[1].Title)

	_, apierr = svc.GetEvents(f.user, &contract.EventFilter{Type: "PARTY"})
	assert.NotNil(t, apierr)
}

func TestEventService_ForeignEvent(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, NopNotifier{}, f.validate)
	other := testutil.NewUser(t, f.db, "bob@example.com")

	event, apierr := svc.CreateEvent(other, &contract.EventRequest{Title: "x", StartDate: "2024-05-01"})
	require.Nil(t, apierr)

	_, apierr = svc.UpdateEvent(f.user, event.ID, &contract.UpdateEventRequest{Title: ptr("mine")})
	assert.Equal(t, apierror.EventNotFoundError, apierr)
	assert.Equal(t, apierror.EventNotFoundError, svc.DeleteEvent(f.user, event.ID))

	updated, apierr := svc.UpdateEvent(other, event.ID, &contract.UpdateEventRequest{AllDay: ptr(true), EndDate: ptr("2024-05-02")})
	require.Nil(t, apierr)
	assert.True(t, updated.AllDay)
	require.NotNil(t, updated.EndDate)
}

func TestEventService_ClearEndDate(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, NopNotifier{}, f.validate)

	event, apierr := svc.CreateEvent(f.user, &contract.EventRequest{Title: "trip", StartDate: "2024-05-01", EndDate: ptr("2024-05-02")})
	require.Nil(t, apierr)
	require.NotNil(t, event.EndDate)

	kept, apierr := svc.UpdateEvent(f.user, event.ID, &contract.UpdateEventRequest{Title: ptr("trip!")})
	require.Nil(t, apierr)
	require.NotNil(t, kept.EndDate)
	assert.Equal(t, "2024-05-02T00:00:00Z", *kept.EndDate)

	_, apierr = svc.UpdateEvent(f.user, event.ID, &contract.UpdateEventRequest{EndDate: ptr("next week")})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())

	cleared, apierr := svc.UpdateEvent(f.user, event.ID, &contract.UpdateEventRequest{EndDate: ptr("")})
	require.Nil(t, apierr)
	assert.Nil(t, cleared.EndDate)
}

func TestEventService_RangeAtEpoch(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.events, NopNotifier{}, f.validate)

	for _, start := range []string{"1970-01-01", "1970-01-02", "2024-05-01"} {
		_, apierr := svc.CreateEvent(f.user, &contract.EventRequest{Title: start, StartDate: start})
		require.Nil(t, apierr)
	}

	epoch, apierr := svc.GetEvents(f.user, &contract.EventFilter{StartDate: "1970-01-01", EndDate: "1970-01-01"})
	require.Nil(t, apierr)
	require.Len(t, epoch, 1)
	assert.Equal(t, "1970-01-01", epoch[0].Title)
}
