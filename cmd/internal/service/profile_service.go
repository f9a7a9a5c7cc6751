package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/database/repository"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// IdentityProvider mirrors profile changes to the account that signs the tokens.
type IdentityProvider interface {
	UpdateUserAttributes(ctx context.Context, sub, email, name string) error
	DeleteUser(ctx context.Context, sub string) error
}

// ExportArchiver keeps a server side copy of data exports.
type ExportArchiver interface {
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)
}

type ProfileDataRepositories struct {
	Tasks    TaskRepository
	Notes    NoteRepository
	Expenses ExpenseRepository
	Events   EventRepository
	CheckIns CheckInRepository
	Prefs    PreferencesRepository
}

type DefaultProfileService struct {
	UserRepo UserRepository
	Data     ProfileDataRepositories
	IDP      IdentityProvider
	Archiver ExportArchiver // nil disables archiving
	Notifier Notifier
	Validate *validator.Validate
}

func NewProfileService(
	userRepo UserRepository,
	data ProfileDataRepositories,
	idp IdentityProvider,
	archiver ExportArchiver,
	notifier Notifier,
	validate *validator.Validate,
) *DefaultProfileService {
	return &DefaultProfileService{
		UserRepo: userRepo,
		Data:     data,
		IDP:      idp,
		Archiver: archiver,
		Notifier: notifier,
		Validate: validate,
	}
}

func (p *DefaultProfileService) GetProfile(actor *entity.User) (*contract.ProfileResponse, apierror.ErrorResponse) {
	return toProfileResponse(actor), nil
}

func (p *DefaultProfileService) UpdateProfile(ctx context.Context, actor *entity.User, req *contract.UpdateProfileRequest) (*contract.ProfileResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if req.Name == "" || req.Email == "" {
		return nil, apierror.ProfileMissingFieldsError
	}

	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	email := strings.ToLower(req.Email)
	if email != actor.Email {
		taken, err := p.UserRepo.FindByEmail(email)
		if err != nil {
			log.Errorf("failed to fetch user by email: %v", err)
			return nil, apierror.InternalServerError
		}

		if taken != nil && taken.ID != actor.ID {
			return nil, apierror.IDPExistingEmailError
		}
	}

	updated := *actor
	updated.Name = req.Name
	updated.Email = email
	if req.Image != nil {
		updated.Image = *req.Image
	}
	updated.UpdatedAt = utils.NowUTC()

	// The IdP only sees the change once the row is written, and a failure
	// there rolls the row back
	var idpErr error
	err := p.UserRepo.SaveInTx(&updated, func() error {
		if email == actor.Email && req.Name == actor.Name {
			return nil
		}
		idpErr = p.IDP.UpdateUserAttributes(ctx, actor.SubUUID, email, req.Name)
		return idpErr
	})
	if idpErr != nil {
		return nil, utils.MapCognitoError(idpErr)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apierror.IDPExistingEmailError
	}

	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return nil, apierror.InternalServerError
	}

	*actor = updated
	resp := toProfileResponse(actor)
	dispatchAsync(p.Notifier, actor.ID, events.Changed(contract.EventProfileUpdated, resp))
	return resp, nil
}

// DeleteAccount removes the IdP account first, so a failure there leaves
// the user able to sign in and retry.
func (p *DefaultProfileService) DeleteAccount(ctx context.Context, actor *entity.User, req *contract.DeleteAccountRequest) apierror.ErrorResponse {
	confirm := strings.TrimSpace(req.ConfirmEmail)
	if confirm == "" || !strings.EqualFold(confirm, actor.Email) {
		return apierror.EmailConfirmMismatchError
	}

	if err := p.IDP.DeleteUser(ctx, actor.SubUUID); err != nil {
		return utils.MapCognitoError(err)
	}

	// Kill the sockets while their rows still exist
	p.Notifier.TerminateUserConnections(ctx, actor.ID, &events.ConnectionKill{Code: contract.KillCodeAccountDeleted})

	if err := p.UserRepo.DeleteWithData(actor.ID); err != nil {
		log.Errorf("failed to delete user %d: %v", actor.ID, err)
		return apierror.InternalServerError
	}

	log.Infof("deleted user %d and all owned data", actor.ID)
	return nil
}

// ExportData collects everything the user owns. The second return value is
// the attachment file name.
func (p *DefaultProfileService) ExportData(ctx context.Context, actor *entity.User) (*contract.ExportResponse, string, apierror.ErrorResponse) {
	export, err := p.collect(actor)
	if err != nil {
		log.Errorf("failed to collect export for user %d: %v", actor.ID, err)
		return nil, "", apierror.InternalServerError
	}

	filename := fmt.Sprintf("orbit-data-export-%s.json", time.Now().UTC().Format(time.DateOnly))
	if p.Archiver != nil {
		p.archive(ctx, actor.ID, filename, export)
	}
	return export, filename, nil
}

func (p *DefaultProfileService) collect(actor *entity.User) (*contract.ExportResponse, error) {
	tasks, err := p.Data.Tasks.FindAllByUser(actor.ID, nil)
	if err != nil {
		return nil, err
	}

	notes, err := p.Data.Notes.FindAllByUser(actor.ID, "")
	if err != nil {
		return nil, err
	}

	expenses, err := p.Data.Expenses.FindAllByUser(actor.ID, 0, 0)
	if err != nil {
		return nil, err
	}

	evts, err := p.Data.Events.FindAll(repository.EventQuery{UserID: actor.ID})
	if err != nil {
		return nil, err
	}

	checkIns, err := p.Data.CheckIns.FindAllByUser(actor.ID)
	if err != nil {
		return nil, err
	}

	prefs, err := p.Data.Prefs.FindByUserID(actor.ID)
	if err != nil {
		return nil, err
	}

	export := &contract.ExportResponse{
		User:       toProfileResponse(actor),
		Tasks:      make([]*contract.TaskResponse, len(tasks)),
		Notes:      make([]*contract.NoteResponse, len(notes)),
		Expenses:   make([]*contract.ExpenseResponse, len(expenses)),
		Events:     make([]*contract.EventResponse, len(evts)),
		CheckIns:   make([]*contract.CheckInResponse, len(checkIns)),
		ExportedAt: utils.FormatEpoch(utils.NowUTC()),
	}
	if prefs != nil {
		export.Preferences = toPreferencesResponse(prefs)
	}
	for i, t := range tasks {
		export.Tasks[i] = toTaskResponse(t)
	}
	for i, n := range notes {
		export.Notes[i] = toNoteResponse(n)
	}
	for i, e := range expenses {
		export.Expenses[i] = toExpenseResponse(e)
	}
	for i, e := range evts {
		export.Events[i] = toEventResponse(e)
	}
	for i, c := range checkIns {
		export.CheckIns[i] = toCheckInResponse(c)
	}
	return export, nil
}

// archive is best effort, the download must not fail because of it.
func (p *DefaultProfileService) archive(ctx context.Context, userID int64, filename string, export *contract.ExportResponse) {
	data, err := json.Marshal(export)
	if err != nil {
		log.Errorf("failed to encode export archive: %v", err)
		return
	}

	key, err := p.Archiver.UploadFile(ctx, data, fmt.Sprintf("%d/%s", userID, filename))
	if err != nil {
		log.Errorf("failed to archive export for user %d: %v", userID, err)
		return
	}
	log.Debugf("archived export of user %d at %s", userID, key)
}

func toProfileResponse(user *entity.User) *contract.ProfileResponse {
	return &contract.ProfileResponse{
		ID:                      user.ID,
		Name:                    user.Name,
		Email:                   user.Email,
		Image:                   user.Image,
		EmailVerified:           user.EmailVerified,
		GoogleCalendarConnected: user.HasGoogleTokens(),
		CreatedAt:               utils.FormatEpoch(user.CreatedAt),
		UpdatedAt:               utils.FormatEpoch(user.UpdatedAt),
	}
}
