package handler

import (
	"context"
	"fmt"
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	GetProfile(actor *entity.User) (*contract.ProfileResponse, apierror.ErrorResponse)
	UpdateProfile(ctx context.Context, actor *entity.User, req *contract.UpdateProfileRequest) (*contract.ProfileResponse, apierror.ErrorResponse)
	DeleteAccount(ctx context.Context, actor *entity.User, req *contract.DeleteAccountRequest) apierror.ErrorResponse
	ExportData(ctx context.Context, actor *entity.User) (*contract.ExportResponse, string, apierror.ErrorResponse)
}

type DefaultProfileRoute struct {
	ProfileService ProfileService
}

func NewProfileDefault(profileService ProfileService) *DefaultProfileRoute {
	return &DefaultProfileRoute{ProfileService: profileService}
}

func (p *DefaultProfileRoute) GetProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	profile, apierr := p.ProfileService.GetProfile(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (p *DefaultProfileRoute) UpdateProfile(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	profile, apierr := p.ProfileService.UpdateProfile(c.Request().Context(), user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (p *DefaultProfileRoute) DeleteAccount(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if apierr := p.ProfileService.DeleteAccount(c.Request().Context(), user, &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.MessageResponse{Message: "Account deleted successfully"})
}

// ExportData sends the export as a file download.
func (p *DefaultProfileRoute) ExportData(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	export, filename, apierr := p.ProfileService.ExportData(c.Request().Context(), user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSONPretty(http.StatusOK, export, "  ")
}
