package service

import (
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/domain/policy"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const eventTypeAll = "ALL"

var eventTypes = map[entity.EventType]struct{}{
	entity.EventTypePersonal:       {},
	entity.EventTypeWork:           {},
	entity.EventTypeMeeting:        {},
	entity.EventTypeDeadline:       {},
	entity.EventTypeBirthday:       {},
	entity.EventTypeHoliday:        {},
	entity.EventTypeF1Race:         {},
	entity.EventTypeGoogleCalendar: {},
}

type EventRepository interface {
	FindAll(q repository.EventQuery) ([]*entity.Event, error)
	FindByID(id int64) (*entity.Event, error)
	FindGoogleEventIDs(userID int64) ([]string, error)
	Create(event *entity.Event) error
	Save(event *entity.Event) error
	Delete(event *entity.Event) error
	DeleteByType(userID int64, eventType entity.EventType) (int64, error)
}

type DefaultEventService struct {
	EventRepo EventRepository
	Notifier  Notifier
	Validate  *validator.Validate
	policy    *policy.OwnershipPolicy
}

func NewEventService(eventRepo EventRepository, notifier Notifier, validate *validator.Validate) *DefaultEventService {
	return &DefaultEventService{
		EventRepo: eventRepo,
		Notifier:  notifier,
		Validate:  validate,
		policy:    policy.NewOwnershipPolicyWith(apierror.EventNotFoundError),
	}
}

// GetEvents filters by date only when both bounds are given.
func (e *DefaultEventService) GetEvents(actor *entity.User, filter *contract.EventFilter) ([]*contract.EventResponse, apierror.ErrorResponse) {
	query := repository.EventQuery{UserID: actor.ID}

	if filter.StartDate != "" && filter.EndDate != "" {
		from, err := utils.ParseTimestamp(filter.StartDate)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("startDate", "timestamp")
		}

		to, err := utils.ParseTimestamp(filter.EndDate)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("endDate", "timestamp")
		}
		query = query.Between(from, to)
	}

	eventType := strings.ToUpper(strings.TrimSpace(filter.Type))
	if eventType != "" && eventType != eventTypeAll {
		if _, ok := eventTypes[entity.EventType(eventType)]; !ok {
			return nil, apierror.NewInvalidParamTypeError("type", "event type")
		}
		query.Type = entity.EventType(eventType)
	}

	found, err := e.EventRepo.FindAll(query)
	if err != nil {
		log.Errorf("failed to fetch events: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.EventResponse, len(found))
	for i, event := range found {
		resp[i] = toEventResponse(event)
	}
	return resp, nil
}

func (e *DefaultEventService) GetEventByID(actor *entity.User, eventID int64) (*contract.EventResponse, apierror.ErrorResponse) {
	event, apierr := e.findOwned(actor, eventID)
	if apierr != nil {
		return nil, apierr
	}
	return toEventResponse(event), nil
}

func (e *DefaultEventService) CreateEvent(actor *entity.User, req *contract.EventRequest) (*contract.EventResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if req.Title == "" || req.StartDate == "" {
		return nil, apierror.EventMissingFieldsError
	}

	if valerr := e.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	startDate, err := utils.ParseTimestamp(req.StartDate)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("start_date", "timestamp")
	}

	endDate, apierr := parseOptionalTimestamp("end_date", req.EndDate)
	if apierr != nil {
		return nil, apierr
	}

	color := req.Color
	if color == "" {
		color = entity.DefaultEventColor
	}

	eventType := entity.EventTypePersonal
	if req.Type != "" {
		eventType = entity.EventType(req.Type)
	}

	now := utils.NowUTC()
	event := &entity.Event{
		ID:          uid.Generate(),
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Color:       color,
		Type:        eventType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.EventRepo.Create(event); err != nil {
		log.Errorf("failed to create event: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toEventResponse(event)
	dispatchAsync(e.Notifier, actor.ID, events.Changed(contract.EventEventCreated, resp))
	return resp, nil
}

func (e *DefaultEventService) UpdateEvent(actor *entity.User, eventID int64, req *contract.UpdateEventRequest) (*contract.EventResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := e.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	event, apierr := e.findOwned(actor, eventID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		startDate, err := utils.ParseTimestamp(*req.StartDate)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("start_date", "timestamp")
		}
		event.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, apierr := parseOptionalTimestamp("end_date", req.EndDate)
		if apierr != nil {
			return nil, apierr
		}
		event.EndDate = endDate
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	if req.Type != nil {
		event.Type = entity.EventType(*req.Type)
	}

	event.UpdatedAt = utils.NowUTC()
	if err := e.EventRepo.Save(event); err != nil {
		log.Errorf("failed to update event: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toEventResponse(event)
	dispatchAsync(e.Notifier, actor.ID, events.Changed(contract.EventEventUpdated, resp))
	return resp, nil
}

func (e *DefaultEventService) DeleteEvent(actor *entity.User, eventID int64) apierror.ErrorResponse {
	event, apierr := e.findOwned(actor, eventID)
	if apierr != nil {
		return apierr
	}

	if err := e.EventRepo.Delete(event); err != nil {
		log.Errorf("failed to delete event: %v", err)
		return apierror.InternalServerError
	}

	dispatchAsync(e.Notifier, actor.ID, events.Deleted(contract.EventEventDeleted, event.ID))
	return nil
}

func (e *DefaultEventService) findOwned(actor *entity.User, eventID int64) (*entity.Event, apierror.ErrorResponse) {
	event, err := e.EventRepo.FindByID(eventID)
	if err != nil {
		log.Errorf("failed to fetch event: %v", err)
		return nil, apierror.InternalServerError
	}

	if apierr := e.policy.CanAccess(event, actor); apierr != nil {
		return nil, apierr
	}
	return event, nil
}

func toEventResponse(event *entity.Event) *contract.EventResponse {
	return &contract.EventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Description:      event.Description,
		StartDate:        utils.FormatEpoch(event.StartDate),
		EndDate:          utils.FormatEpochPtr(event.EndDate),
		AllDay:           event.AllDay,
		Location:         event.Location,
		Color:            event.Color,
		Type:             string(event.Type),
		GoogleEventID:    event.GoogleEventID,
		GoogleCalendarID: event.GoogleCalendarID,
		CreatedAt:        utils.FormatEpoch(event.CreatedAt),
		UpdatedAt:        utils.FormatEpoch(event.UpdatedAt),
	}
}
