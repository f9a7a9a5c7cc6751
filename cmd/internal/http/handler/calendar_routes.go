package handler

import (
	"context"
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"strings"

	"github.com/labstack/echo/v4"
)

type CalendarService interface {
	StartAuth(actor *entity.User) (string, apierror.ErrorResponse)
	CompleteAuth(ctx context.Context, code, state, oauthErr string) string
	Sync(ctx context.Context, actor *entity.User) (*contract.CalendarSyncResponse, apierror.ErrorResponse)
	HandleAction(actor *entity.User, req *contract.CalendarActionRequest) (*contract.CalendarDisconnectResponse, apierror.ErrorResponse)
}

type DefaultCalendarRoute struct {
	CalendarService CalendarService
}

func NewCalendarDefault(calendarService CalendarService) *DefaultCalendarRoute {
	return &DefaultCalendarRoute{CalendarService: calendarService}
}

// StartAuth redirects browsers to the Google consent screen. Clients that
// ask for JSON get the URL instead.
func (h *DefaultCalendarRoute) StartAuth(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	authURL, apierr := h.CalendarService.StartAuth(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusOK, &contract.CalendarAuthResponse{AuthURL: authURL})
	}
	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback is reached by Google, not by the dashboard, so it carries no
// bearer token. The state parameter identifies the user.
func (h *DefaultCalendarRoute) Callback(c echo.Context) error {
	target := h.CalendarService.CompleteAuth(
		c.Request().Context(),
		c.QueryParam("code"),
		c.QueryParam("state"),
		c.QueryParam("error"),
	)
	return c.Redirect(http.StatusTemporaryRedirect, target)
}

func (h *DefaultCalendarRoute) Sync(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp, apierr := h.CalendarService.Sync(c.Request().Context(), user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DefaultCalendarRoute) HandleAction(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CalendarActionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := h.CalendarService.HandleAction(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
