package handler

import (
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type PreferencesService interface {
	GetPreferences(actor *entity.User) (*contract.PreferencesResponse, apierror.ErrorResponse)
	UpdatePreferences(actor *entity.User, req *contract.UpdatePreferencesRequest) (*contract.PreferencesResponse, apierror.ErrorResponse)
}

type DefaultPreferencesRoute struct {
	PreferencesService PreferencesService
}

func NewPreferencesDefault(preferencesService PreferencesService) *DefaultPreferencesRoute {
	return &DefaultPreferencesRoute{PreferencesService: preferencesService}
}

func (p *DefaultPreferencesRoute) GetPreferences(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	prefs, apierr := p.PreferencesService.GetPreferences(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (p *DefaultPreferencesRoute) UpdatePreferences(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	prefs, apierr := p.PreferencesService.UpdatePreferences(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, prefs)
}
