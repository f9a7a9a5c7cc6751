package handler

import (
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type EventService interface {
	GetEvents(actor *entity.User, filter *contract.EventFilter) ([]*contract.EventResponse, apierror.ErrorResponse)
	GetEventByID(actor *entity.User, eventID int64) (*contract.EventResponse, apierror.ErrorResponse)
	CreateEvent(actor *entity.User, req *contract.EventRequest) (*contract.EventResponse, apierror.ErrorResponse)
	UpdateEvent(actor *entity.User, eventID int64, req *contract.UpdateEventRequest) (*contract.EventResponse, apierror.ErrorResponse)
	DeleteEvent(actor *entity.User, eventID int64) apierror.ErrorResponse
}

type DefaultEventRoute struct {
	EventService EventService
}

func NewEventDefault(eventService EventService) *DefaultEventRoute {
	return &DefaultEventRoute{EventService: eventService}
}

// GetEvents answers with a bare array, the calendar widget expects it.
func (e *DefaultEventRoute) GetEvents(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	filter := &contract.EventFilter{
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
		Type:      c.QueryParam("type"),
	}

	evts, apierr := e.EventService.GetEvents(user, filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, evts)
}

func (e *DefaultEventRoute) GetEvent(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	event, apierr := e.EventService.GetEventByID(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}

func (e *DefaultEventRoute) CreateEvent(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	event, apierr := e.EventService.CreateEvent(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}

func (e *DefaultEventRoute) UpdateEvent(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	var req contract.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	event, apierr := e.EventService.UpdateEvent(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}

func (e *DefaultEventRoute) DeleteEvent(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	if apierr := e.EventService.DeleteEvent(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.MessageResponse{Message: "Event deleted successfully"})
}
