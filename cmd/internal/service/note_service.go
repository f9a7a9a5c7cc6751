package service

import (
	"orbit/cmd/internal/contract"
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

type NoteRepository interface {
	FindAllByUser(userID int64, tag string) ([]*entity.Note, error)
	FindByID(id int64) (*entity.Note, error)
	Create(note *entity.Note) error
	Save(note *entity.Note) error
	Delete(note *entity.Note) error
}

type DefaultNoteService struct {
	NoteRepo NoteRepository
	Notifier Notifier
	Validate *validator.Validate
	policy   *policy.OwnershipPolicy
}

func NewNoteService(noteRepo NoteRepository, notifier Notifier, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo: noteRepo,
		Notifier: notifier,
		Validate: validate,
		policy:   policy.NewOwnershipPolicy(),
	}
}

func (n *DefaultNoteService) GetNotes(actor *entity.User, tag string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if strings.ContainsAny(tag, " \t\n") {
		return []*contract.NoteResponse{}, nil
	}

	notes, err := n.NoteRepo.FindAllByUser(actor.ID, tag)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) GetNoteByID(actor *entity.User, noteID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.findOwned(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(actor *entity.User, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Tags = normalizeTags(req.Tags)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	note := &entity.Note{
		ID:        uid.Generate(),
		UserID:    actor.ID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      strings.Join(req.Tags, " "),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.NoteRepo.Create(note); err != nil {
		log.Errorf("failed to create note: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toNoteResponse(note)
	dispatchAsync(n.Notifier, actor.ID, events.Changed(contract.EventNoteCreated, resp))
	return resp, nil
}

func (n *DefaultNoteService) UpdateNote(actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Tags = normalizeTags(req.Tags)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.findOwned(actor, noteID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = strings.Join(req.Tags, " ")
	}

	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toNoteResponse(note)
	dispatchAsync(n.Notifier, actor.ID, events.Changed(contract.EventNoteUpdated, resp))
	return resp, nil
}

func (n *DefaultNoteService) DeleteNote(actor *entity.User, noteID int64) apierror.ErrorResponse {
	note, apierr := n.findOwned(actor, noteID)
	if apierr != nil {
		return apierr
	}

	if err := n.NoteRepo.Delete(note); err != nil {
		log.Errorf("failed to delete note: %v", err)
		return apierror.InternalServerError
	}

	dispatchAsync(n.Notifier, actor.ID, events.Deleted(contract.EventNoteDeleted, note.ID))
	return nil
}

func (n *DefaultNoteService) findOwned(actor *entity.User, noteID int64) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.InternalServerError
	}

	if apierr := n.policy.CanAccess(note, actor); apierr != nil {
		return nil, apierr
	}
	return note, nil
}

// normalizeTags lower-cases tags so "Go" and "go" count as duplicates.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = strings.ToLower(tag)
	}
	return out
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      toTagsArray(note.Tags),
		CreatedAt: utils.FormatEpoch(note.CreatedAt),
		UpdatedAt: utils.FormatEpoch(note.UpdatedAt),
	}
}

func toTagsArray(tags string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return strings.Split(tags, " ")
}
