package service

import (
	"orbit/cmd/internal/contract"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/domain/events"
	"orbit/cmd/internal/domain/policy"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// Fits decimal(12,2).
var maxExpenseAmount = decimal.New(1, 10)

type ExpenseRepository interface {
	FindAllByUser(userID int64, from, to int64) ([]*entity.Expense, error)
	FindByID(id int64) (*entity.Expense, error)
	Create(expense *entity.Expense) error
	Save(expense *entity.Expense) error
	Delete(expense *entity.Expense) error
}

type DefaultExpenseService struct {
	ExpenseRepo ExpenseRepository
	PrefsRepo   PreferencesRepository
	Notifier    Notifier
	Validate    *validator.Validate
	policy      *policy.OwnershipPolicy
}

func NewExpenseService(
	expenseRepo ExpenseRepository,
	prefsRepo PreferencesRepository,
	notifier Notifier,
	validate *validator.Validate,
) *DefaultExpenseService {
	return &DefaultExpenseService{
		ExpenseRepo: expenseRepo,
		PrefsRepo:   prefsRepo,
		Notifier:    notifier,
		Validate:    validate,
		policy:      policy.NewOwnershipPolicy(),
	}
}

// GetExpenses lists the expenses of the given month (YYYY-MM), or all of
// them when month is empty.
func (e *DefaultExpenseService) GetExpenses(actor *entity.User, month string) ([]*contract.ExpenseResponse, apierror.ErrorResponse) {
	var from, to int64
	if month != "" {
		start, end, apierr := monthRange(month)
		if apierr != nil {
			return nil, apierr
		}
		from, to = start, end
	}

	expenses, err := e.ExpenseRepo.FindAllByUser(actor.ID, from, to)
	if err != nil {
		log.Errorf("failed to fetch expenses: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		resp[i] = toExpenseResponse(expense)
	}
	return resp, nil
}

func (e *DefaultExpenseService) GetSummary(actor *entity.User, month string) (*contract.ExpenseSummaryResponse, apierror.ErrorResponse) {
	if month == "" {
		month = time.Now().UTC().Format(monthLayout)
	}

	from, to, apierr := monthRange(month)
	if apierr != nil {
		return nil, apierr
	}

	expenses, err := e.ExpenseRepo.FindAllByUser(actor.ID, from, to)
	if err != nil {
		log.Errorf("failed to fetch expenses: %v", err)
		return nil, apierror.InternalServerError
	}

	prefs, apierr := findOrCreatePreferences(e.PrefsRepo, actor.ID)
	if apierr != nil {
		return nil, apierr
	}

	total := decimal.Zero
	byCategory := map[string]*contract.CategoryTotal{}
	for _, expense := range expenses {
		total = total.Add(expense.Amount)

		cat := string(expense.Category)
		ct, ok := byCategory[cat]
		if !ok {
			ct = &contract.CategoryTotal{Category: cat, Total: decimal.Zero}
			byCategory[cat] = ct
		}
		ct.Total = ct.Total.Add(expense.Amount)
		ct.Count++
	}

	categories := make([]*contract.CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		categories = append(categories, ct)
	}
	sort.Slice(categories, func(i, j int) bool {
		if cmp := categories[i].Total.Cmp(categories[j].Total); cmp != 0 {
			return cmp > 0
		}
		return categories[i].Category < categories[j].Category
	})

	return &contract.ExpenseSummaryResponse{
		Month:      month,
		Total:      total,
		Budget:     prefs.MonthlyBudget,
		Remaining:  prefs.MonthlyBudget.Sub(total),
		Currency:   prefs.Currency,
		Categories: categories,
	}, nil
}

func (e *DefaultExpenseService) CreateExpense(actor *entity.User, req *contract.ExpenseRequest) (*contract.ExpenseResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := e.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := checkAmount(req.Amount); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	date := now
	if req.Date != nil && *req.Date != "" {
		parsed, err := utils.ParseTimestamp(*req.Date)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "timestamp")
		}
		date = parsed
	}

	category := entity.CategoryOther
	if req.Category != "" {
		category = entity.ExpenseCategory(req.Category)
	}

	expense := &entity.Expense{
		ID:          uid.Generate(),
		UserID:      actor.ID,
		Amount:      req.Amount.Round(2),
		Description: req.Description,
		Category:    category,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.ExpenseRepo.Create(expense); err != nil {
		log.Errorf("failed to create expense: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toExpenseResponse(expense)
	dispatchAsync(e.Notifier, actor.ID, events.Changed(contract.EventExpenseCreated, resp))
	return resp, nil
}

func (e *DefaultExpenseService) UpdateExpense(actor *entity.User, expenseID int64, req *contract.UpdateExpenseRequest) (*contract.ExpenseResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := e.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if req.Amount != nil {
		if apierr := checkAmount(*req.Amount); apierr != nil {
			return nil, apierr
		}
	}

	expense, apierr := e.findOwned(actor, expenseID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Amount != nil {
		expense.Amount = req.Amount.Round(2)
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		expense.Category = entity.ExpenseCategory(*req.Category)
	}
	if req.Date != nil {
		parsed, err := utils.ParseTimestamp(*req.Date)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "timestamp")
		}
		expense.Date = parsed
	}

	expense.UpdatedAt = utils.NowUTC()
	if err := e.ExpenseRepo.Save(expense); err != nil {
		log.Errorf("failed to update expense: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toExpenseResponse(expense)
	dispatchAsync(e.Notifier, actor.ID, events.Changed(contract.EventExpenseUpdated, resp))
	return resp, nil
}

func (e *DefaultExpenseService) DeleteExpense(actor *entity.User, expenseID int64) apierror.ErrorResponse {
	expense, apierr := e.findOwned(actor, expenseID)
	if apierr != nil {
		return apierr
	}

	if err := e.ExpenseRepo.Delete(expense); err != nil {
		log.Errorf("failed to delete expense: %v", err)
		return apierror.InternalServerError
	}

	dispatchAsync(e.Notifier, actor.ID, events.Deleted(contract.EventExpenseDeleted, expense.ID))
	return nil
}

func (e *DefaultExpenseService) findOwned(actor *entity.User, expenseID int64) (*entity.Expense, apierror.ErrorResponse) {
	expense, err := e.ExpenseRepo.FindByID(expenseID)
	if err != nil {
		log.Errorf("failed to fetch expense: %v", err)
		return nil, apierror.InternalServerError
	}

	if apierr := e.policy.CanAccess(expense, actor); apierr != nil {
		return nil, apierr
	}
	return expense, nil
}

func checkAmount(amount decimal.Decimal) apierror.ErrorResponse {
	switch {
	case !amount.IsPositive():
		return amountError("must be greater than 0")
	case amount.GreaterThanOrEqual(maxExpenseAmount):
		return amountError("is too large")
	}
	return nil
}

func amountError(problem string) apierror.ErrorResponse {
	structured := apierror.NewStructured(400)
	structured.Add("amount", problem)
	return structured
}

// monthRange returns the [start, end) epoch millis of a YYYY-MM month in UTC.
func monthRange(month string) (int64, int64, apierror.ErrorResponse) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return 0, 0, apierror.NewInvalidParamTypeError("month", "YYYY-MM")
	}
	return start.UnixMilli(), start.AddDate(0, 1, 0).UnixMilli(), nil
}

func toExpenseResponse(expense *entity.Expense) *contract.ExpenseResponse {
	return &contract.ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Description: expense.Description,
		Category:    string(expense.Category),
		Date:        utils.FormatEpoch(expense.Date),
		CreatedAt:   utils.FormatEpoch(expense.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(expense.UpdatedAt),
	}
}
