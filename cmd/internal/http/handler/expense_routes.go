package handler

import (
	"net/http"
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ExpenseService interface {
	GetExpenses(actor *entity.User, month string) ([]*contract.ExpenseResponse, apierror.ErrorResponse)
	GetSummary(actor *entity.User, month string) (*contract.ExpenseSummaryResponse, apierror.ErrorResponse)
	CreateExpense(actor *entity.User, req *contract.ExpenseRequest) (*contract.ExpenseResponse, apierror.ErrorResponse)
	UpdateExpense(actor *entity.User, expenseID int64, req *contract.UpdateExpenseRequest) (*contract.ExpenseResponse, apierror.ErrorResponse)
	DeleteExpense(actor *entity.User, expenseID int64) apierror.ErrorResponse
}

type DefaultExpenseRoute struct {
	ExpenseService ExpenseService
}

func NewExpenseDefault(expenseService ExpenseService) *DefaultExpenseRoute {
	return &DefaultExpenseRoute{ExpenseService: expenseService}
}

func (e *DefaultExpenseRoute) GetExpenses(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	expenses, apierr := e.ExpenseService.GetExpenses(user, c.QueryParam("month"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"expenses": expenses})
}

func (e *DefaultExpenseRoute) GetSummary(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	summary, apierr := e.ExpenseService.GetSummary(user, c.QueryParam("month"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, summary)
}

func (e *DefaultExpenseRoute) CreateExpense(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	expense, apierr := e.ExpenseService.CreateExpense(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, expense)
}

func (e *DefaultExpenseRoute) UpdateExpense(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	var req contract.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	expense, apierr := e.ExpenseService.UpdateExpense(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, expense)
}

func (e *DefaultExpenseRoute) DeleteExpense(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, iderr := pathID(c)
	if iderr != nil {
		return c.JSON(iderr.Code(), iderr)
	}

	if apierr := e.ExpenseService.DeleteExpense(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
