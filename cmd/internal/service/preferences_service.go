package service

import (
	"encoding/json"
	"errors"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PreferencesRepository interface {
	FindByUserID(userID int64) (*entity.UserPreferences, error)
	Create(prefs *entity.UserPreferences) error
	Save(prefs *entity.UserPreferences) error
	DisableCalendar(userID int64, now int64) error
}

type DefaultPreferencesService struct {
	PrefsRepo PreferencesRepository
	Notifier  Notifier
	Validate  *validator.Validate
}

func NewPreferencesService(prefsRepo PreferencesRepository, notifier Notifier, validate *validator.Validate) *DefaultPreferencesService {
	return &DefaultPreferencesService{
		PrefsRepo: prefsRepo,
		Notifier:  notifier,
		Validate:  validate,
	}
}

func (p *DefaultPreferencesService) GetPreferences(actor *entity.User) (*contract.PreferencesResponse, apierror.ErrorResponse) {
	prefs, apierr := findOrCreatePreferences(p.PrefsRepo, actor.ID)
	if apierr != nil {
		return nil, apierr
	}
	return toPreferencesResponse(prefs), nil
}

func (p *DefaultPreferencesService) UpdatePreferences(actor *entity.User, req *contract.UpdatePreferencesRequest) (*contract.PreferencesResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if req.MonthlyBudget != nil && req.MonthlyBudget.IsNegative() {
		structured := apierror.NewStructured(400)
		structured.Add("monthly_budget", "must not be negative")
		return nil, structured
	}

	if len(req.DashboardLayout) > 0 && !json.Valid(req.DashboardLayout) {
		return nil, apierror.NewInvalidParamTypeError("dashboard_layout", "JSON")
	}

	prefs, apierr := findOrCreatePreferences(p.PrefsRepo, actor.ID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Theme != nil {
		prefs.Theme = entity.Theme(*req.Theme)
	}
	if req.MonthlyBudget != nil {
		prefs.MonthlyBudget = req.MonthlyBudget.Round(2)
	}
	if req.Currency != nil {
		prefs.Currency = *req.Currency
	}
	if req.WeatherLocation != nil {
		prefs.WeatherLocation = req.WeatherLocation
		if *req.WeatherLocation == "" {
			prefs.WeatherLocation = nil
		}
	}
	if req.NewsCategories != nil {
		prefs.NewsCategories = datatypes.JSONSlice[string](req.NewsCategories)
	}
	if len(req.DashboardLayout) > 0 {
		prefs.DashboardLayout = datatypes.JSON(req.DashboardLayout)
	}
	if req.EnabledWidgets != nil {
		widgets := prefs.Widgets()
		for k, v := range req.EnabledWidgets {
			widgets[k] = v
		}
		prefs.EnabledWidgets = datatypes.NewJSONType(widgets)
	}
	if req.GoogleCalendarSync != nil {
		prefs.GoogleCalendarSync = *req.GoogleCalendarSync
	}

	prefs.UpdatedAt = utils.NowUTC()
	if err := p.PrefsRepo.Save(prefs); err != nil {
		log.Errorf("failed to update preferences: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toPreferencesResponse(prefs)
	dispatchAsync(p.Notifier, actor.ID, events.Changed(contract.EventPreferencesUpdated, resp))
	return resp, nil
}

// findOrCreatePreferences lazily writes the default row. Two concurrent
// first requests race on the unique user_id, the loser reads the winner's row.
func findOrCreatePreferences(repo PreferencesRepository, userID int64) (*entity.UserPreferences, apierror.ErrorResponse) {
	prefs, err := repo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch preferences: %v", err)
		return nil, apierror.InternalServerError
	}

	if prefs != nil {
		return prefs, nil
	}

	prefs = entity.NewDefaultPreferences(uid.Generate(), userID, utils.NowUTC())
	err = repo.Create(prefs)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		prefs, err = repo.FindByUserID(userID)
	}

	if err != nil || prefs == nil {
		log.Errorf("failed to create default preferences: %v", err)
		return nil, apierror.InternalServerError
	}
	return prefs, nil
}

func toPreferencesResponse(prefs *entity.UserPreferences) *contract.PreferencesResponse {
	categories := []string(prefs.NewsCategories)
	if categories == nil {
		categories = []string{}
	}

	var layout json.RawMessage
	if len(prefs.DashboardLayout) > 0 {
		layout = json.RawMessage(prefs.DashboardLayout)
	}

	return &contract.PreferencesResponse{
		ID:                    prefs.ID,
		Theme:                 string(prefs.Theme),
		MonthlyBudget:         prefs.MonthlyBudget,
		Currency:              prefs.Currency,
		WeatherLocation:       prefs.WeatherLocation,
		NewsCategories:        categories,
		DashboardLayout:       layout,
		EnabledWidgets:        prefs.Widgets(),
		GoogleCalendarEnabled: prefs.GoogleCalendarEnabled,
		GoogleCalendarSync:    prefs.GoogleCalendarSync,
		GoogleCalendarID:      prefs.GoogleCalendarID,
		CreatedAt:             utils.FormatEpoch(prefs.CreatedAt),
		UpdatedAt:             utils.FormatEpoch(prefs.UpdatedAt),
	}
}
