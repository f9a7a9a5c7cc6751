package handler

import (
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

type TaskService interface {
	GetTasks(actor *entity.User, completed *bool) ([]*contract.TaskResponse, apierror.ErrorResponse)
	GetTaskByID(actor *entity.User, taskID int64) (*contract.TaskResponse, apierror.ErrorResponse)
	CreateTask(actor *entity.User, req *contract.TaskRequest) (*contract.TaskResponse, apierror.ErrorResponse)
	UpdateTask(actor *entity.User, taskID int64, req *contract.UpdateTaskRequest) (*contract.TaskResponse, apierror.ErrorResponse)
	DeleteTask(actor *entity.User, taskID int64) apierror.ErrorResponse
}

type DefaultTaskRoute struct {
	TaskService TaskService
}

func NewTaskDefault(taskService TaskService) *DefaultTaskRoute {
	return &DefaultTaskRoute{TaskService: taskService}
}

func (t *DefaultTaskRoute) GetTasks(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var completed *bool
	if raw := c.QueryParam("completed"); raw != "" {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("completed", "boolean"))
		}
		completed = &val
	}

	tasks, apierr := t.TaskService.GetTasks(user, completed)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (t *DefaultTaskRoute) GetTask(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	task, apierr := t.TaskService.GetTaskByID(user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, task)
}

func (t *DefaultTaskRoute) CreateTask(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	task, apierr := t.TaskService.CreateTask(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, task)
}

func (t *DefaultTaskRoute) UpdateTask(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	var req contract.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	task, apierr := t.TaskService.UpdateTask(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, task)
}

func (t *DefaultTaskRoute) DeleteTask(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	if apierr := t.TaskService.DeleteTask(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
