package handler

import (
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"time"

	"github.com/labstack/echo/v4"
)

// HeaderTimezone carries the IANA zone of the browser, "today" is
// evaluated there.
const HeaderTimezone = "X-Timezone"

type CheckInService interface {
	GetStatus(actor *entity.User, loc *time.Location) (*contract.CheckInStatusResponse, apierror.ErrorResponse)
	CheckIn(actor *entity.User, loc *time.Location) (*contract.CheckInCreatedResponse, apierror.ErrorResponse)
}

type DefaultCheckInRoute struct {
	CheckInService  CheckInService
	DefaultLocation *time.Location
}

func NewCheckInDefault(checkInService CheckInService, defaultLocation *time.Location) *DefaultCheckInRoute {
	return &DefaultCheckInRoute{
		CheckInService:  checkInService,
		DefaultLocation: defaultLocation,
	}
}

func (h *DefaultCheckInRoute) GetStatus(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	status, apierr := h.CheckInService.GetStatus(user, h.location(c))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *DefaultCheckInRoute) CheckIn(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	created, apierr := h.CheckInService.CheckIn(user, h.location(c))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *DefaultCheckInRoute) location(c echo.Context) *time.Location {
	return utils.ResolveLocation(c.Request().Header.Get(HeaderTimezone), h.DefaultLocation)
}
