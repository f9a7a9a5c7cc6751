package service

import (
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/domain/policy"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type TaskRepository interface {
	FindAllByUser(userID int64, completed *bool) ([]*entity.Task, error)
	FindByID(id int64) (*entity.Task, error)
	Create(task *entity.Task) error
	Save(task *entity.Task) error
	Delete(task *entity.Task) error
}

type DefaultTaskService struct {
	TaskRepo TaskRepository
	Notifier Notifier
	Validate *validator.Validate
	policy   *policy.OwnershipPolicy
}

func NewTaskService(taskRepo TaskRepository, notifier Notifier, validate *validator.Validate) *DefaultTaskService {
	return &DefaultTaskService{
		TaskRepo: taskRepo,
		Notifier: notifier,
		Validate: validate,
		policy:   policy.NewOwnershipPolicy(),
	}
}

func (t *DefaultTaskService) GetTasks(actor *entity.User, completed *bool) ([]*contract.TaskResponse, apierror.ErrorResponse) {
	tasks, err := t.TaskRepo.FindAllByUser(actor.ID, completed)
	if err != nil {
		log.Errorf("failed to fetch tasks: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.TaskResponse, len(tasks))
	for i, task := range tasks {
		resp[i] = toTaskResponse(task)
	}
	return resp, nil
}

func (t *DefaultTaskService) GetTaskByID(actor *entity.User, taskID int64) (*contract.TaskResponse, apierror.ErrorResponse) {
	task, apierr := t.findOwned(actor, taskID)
	if apierr != nil {
		return nil, apierr
	}
	return toTaskResponse(task), nil
}

func (t *DefaultTaskService) CreateTask(actor *entity.User, req *contract.TaskRequest) (*contract.TaskResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	dueDate, apierr := parseOptionalTimestamp("due_date", req.DueDate)
	if apierr != nil {
		return nil, apierr
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		priority = entity.TaskPriority(req.Priority)
	}

	now := utils.NowUTC()
	task := &entity.Task{
		ID:          uid.Generate(),
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.TaskRepo.Create(task); err != nil {
		log.Errorf("failed to create task: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toTaskResponse(task)
	dispatchAsync(t.Notifier, actor.ID, events.Changed(contract.EventTaskCreated, resp))
	return resp, nil
}

func (t *DefaultTaskService) UpdateTask(actor *entity.User, taskID int64, req *contract.UpdateTaskRequest) (*contract.TaskResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := t.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	task, apierr := t.findOwned(actor, taskID)
	if apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = entity.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, apierr := parseOptionalTimestamp("due_date", req.DueDate)
		if apierr != nil {
			return nil, apierr
		}
		task.DueDate = dueDate
	}
	if req.Completed != nil {
		task.SetCompleted(*req.Completed, now)
	}

	task.UpdatedAt = now
	if err := t.TaskRepo.Save(task); err != nil {
		log.Errorf("failed to update task: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toTaskResponse(task)
	dispatchAsync(t.Notifier, actor.ID, events.Changed(contract.EventTaskUpdated, resp))
	return resp, nil
}

func (t *DefaultTaskService) DeleteTask(actor *entity.User, taskID int64) apierror.ErrorResponse {
	task, apierr := t.findOwned(actor, taskID)
	if apierr != nil {
		return apierr
	}

	if err := t.TaskRepo.Delete(task); err != nil {
		log.Errorf("failed to delete task: %v", err)
		return apierror.InternalServerError
	}

	dispatchAsync(t.Notifier, actor.ID, events.Deleted(contract.EventTaskDeleted, task.ID))
	return nil
}

func (t *DefaultTaskService) findOwned(actor *entity.User, taskID int64) (*entity.Task, apierror.ErrorResponse) {
	task, err := t.TaskRepo.FindByID(taskID)
	if err != nil {
		log.Errorf("failed to fetch task: %v", err)
		return nil, apierror.InternalServerError
	}

	if apierr := t.policy.CanAccess(task, actor); apierr != nil {
		return nil, apierr
	}
	return task, nil
}

func toTaskResponse(task *entity.Task) *contract.TaskResponse {
	return &contract.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		DueDate:     utils.FormatEpochPtr(task.DueDate),
		CompletedAt: utils.FormatEpochPtr(task.CompletedAt),
		CreatedAt:   utils.FormatEpoch(task.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(task.UpdatedAt),
	}
}

// parseOptionalTimestamp treats nil and "" as "no value".
func parseOptionalTimestamp(field string, value *string) (*int64, apierror.ErrorResponse) {
	if value == nil || *value == "" {
		return nil, nil
	}

	millis, err := utils.ParseTimestamp(*value)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError(field, "timestamp")
	}
	return &millis, nil
}
