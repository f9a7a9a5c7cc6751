package service

import (
	"errors"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// CheckInWindowDays bounds the history returned by the status endpoint,
// today included.
const CheckInWindowDays = 30

type CheckInRepository interface {
	FindSince(userID int64, day string) ([]*entity.CheckIn, error)
	FindAllByUser(userID int64) ([]*entity.CheckIn, error)
	FindByDay(userID int64, day string) (*entity.CheckIn, error)
	Create(checkIn *entity.CheckIn) error
}

type DefaultCheckInService struct {
	CheckInRepo CheckInRepository
	Notifier    Notifier
	Now         func() time.Time
}

func NewCheckInService(checkInRepo CheckInRepository, notifier Notifier) *DefaultCheckInService {
	return &DefaultCheckInService{
		CheckInRepo: checkInRepo,
		Notifier:    notifier,
		Now:         time.Now,
	}
}

// GetStatus reports the check-ins of the last 30 days and the current
// streak, with "today" evaluated in loc.
func (s *DefaultCheckInService) GetStatus(actor *entity.User, loc *time.Location) (*contract.CheckInStatusResponse, apierror.ErrorResponse) {
	today := s.Now().In(loc)
	checkIns, apierr := s.recent(actor.ID, today)
	if apierr != nil {
		return nil, apierr
	}

	days := checkInDays(checkIns)
	resp := make([]*contract.CheckInResponse, len(checkIns))
	for i, checkIn := range checkIns {
		resp[i] = toCheckInResponse(checkIn)
	}

	return &contract.CheckInStatusResponse{
		CheckIns:       resp,
		CurrentStreak:  CalculateStreak(days, today),
		CheckedInToday: containsDay(days, DayKey(today)),
		TotalCheckIns:  len(checkIns),
	}, nil
}

func (s *DefaultCheckInService) CheckIn(actor *entity.User, loc *time.Location) (*contract.CheckInCreatedResponse, apierror.ErrorResponse) {
	now := s.Now()
	today := now.In(loc)
	day := DayKey(today)

	existing, err := s.CheckInRepo.FindByDay(actor.ID, day)
	if err != nil {
		log.Errorf("failed to fetch check-in: %v", err)
		return nil, apierror.InternalServerError
	}

	if existing != nil {
		return nil, apierror.AlreadyCheckedInError
	}

	checkIn := &entity.CheckIn{
		ID:        uid.Generate(),
		UserID:    actor.ID,
		Day:       day,
		CreatedAt: now.UTC().UnixMilli(),
	}

	err = s.CheckInRepo.Create(checkIn)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent request for the same day
		return nil, apierror.AlreadyCheckedInError
	}

	if err != nil {
		log.Errorf("failed to create check-in: %v", err)
		return nil, apierror.InternalServerError
	}

	checkIns, apierr := s.recent(actor.ID, today)
	if apierr != nil {
		return nil, apierr
	}

	resp := &contract.CheckInCreatedResponse{
		Message:        "Checked in successfully",
		CheckIn:        toCheckInResponse(checkIn),
		CurrentStreak:  CalculateStreak(checkInDays(checkIns), today),
		CheckedInToday: true,
		TotalCheckIns:  len(checkIns),
	}
	dispatchAsync(s.Notifier, actor.ID, events.Changed(contract.EventCheckInCreated, resp))
	return resp, nil
}

func (s *DefaultCheckInService) recent(userID int64, today time.Time) ([]*entity.CheckIn, apierror.ErrorResponse) {
	since := DayKey(today.AddDate(0, 0, -(CheckInWindowDays - 1)))
	checkIns, err := s.CheckInRepo.FindSince(userID, since)
	if err != nil {
		log.Errorf("failed to fetch check-ins: %v", err)
		return nil, apierror.InternalServerError
	}
	return checkIns, nil
}

// DayKey is the calendar day of t, in t's own location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// CalculateStreak counts consecutive days ending today that have a
// check-in. Missing today means the streak is already broken.
func CalculateStreak(days []string, today time.Time) int {
	present := make(map[string]struct{}, len(days))
	for _, d := range days {
		present[d] = struct{}{}
	}

	streak := 0
	cursor := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, today.Location())
	for {
		if _, ok := present[DayKey(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

func checkInDays(checkIns []*entity.CheckIn) []string {
	days := make([]string, len(checkIns))
	for i, c := range checkIns {
		days[i] = c.Day
	}
	return days
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func toCheckInResponse(checkIn *entity.CheckIn) *contract.CheckInResponse {
	return &contract.CheckInResponse{
		ID:        checkIn.ID,
		Date:      checkIn.Day,
		CreatedAt: utils.FormatEpoch(checkIn.CreatedAt),
	}
}
