package app

import (
	"database/sql"

	"github.com/kasabook/kasabook/internal/config"
	"github.com/kasabook/kasabook/internal/event_bus"
	"github.com/kasabook/kasabook/internal/utils"
	"github.com/kasabook/kasabook/pkg/account"
	"github.com/kasabook/kasabook/pkg/asset"
	"github.com/kasabook/kasabook/pkg/budget"
	"github.com/kasabook/kasabook/pkg/cashflow"
	"github.com/kasabook/kasabook/pkg/category"
	"github.com/kasabook/kasabook/pkg/debt"
	"github.com/kasabook/kasabook/pkg/forecast"
	"github.com/kasabook/kasabook/pkg/project"
	"github.com/kasabook/kasabook/pkg/recurrence"
	"github.com/kasabook/kasabook/pkg/transaction"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	AccountRepo    account.AccountRepo
	AccountService account.AccountService
	AccountHandler *account.AccountHandler

	CategoryRepo    category.CategoryRepo
	CategoryService category.CategoryService
	CategoryHandler *category.CategoryHandler

	TransactionRepo    transaction.TransactionRepo
	TransactionService transaction.TransactionService
	TransactionHandler *transaction.TransactionHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	RecurrenceExpander *recurrence.Expander
	RecurrenceHandler  *recurrence.RecurrenceHandler

	ForecastService forecast.ForecastService
	ForecastHandler *forecast.ForecastHandler

	DebtRepo    debt.DebtRepo
	DebtService debt.DebtService
	DebtHandler *debt.DebtHandler

	AssetService asset.AssetService
	AssetHandler *asset.AssetHandler

	ProjectService project.ProjectService
	ProjectHandler *project.ProjectHandler

	ScheduleRepo    cashflow.ScheduleRepo
	ScheduleService cashflow.ScheduleService
	ScheduleHandler *cashflow.ScheduleHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.EventBus)
	deps.TransactionHandler = transaction.NewTransactionHandler(deps.TransactionService)

	deps.AccountRepo = account.NewAccountRepo(db)
	deps.AccountService = account.NewAccountService(deps.AccountRepo, deps.TransactionRepo)
	deps.AccountHandler = account.NewAccountHandler(deps.AccountService)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewCategoryHandler(deps.CategoryService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.CategoryRepo, deps.TransactionRepo)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.RecurrenceExpander = recurrence.NewExpander(deps.TransactionRepo, deps.Clock)
	deps.RecurrenceHandler = recurrence.NewRecurrenceHandler(deps.RecurrenceExpander)

	deps.ForecastService = forecast.NewForecastService(deps.AccountService, deps.TransactionRepo, deps.Clock)
	deps.ForecastHandler = forecast.NewForecastHandler(deps.ForecastService, cfg.Forecast.DefaultHorizonMonths)

	deps.DebtRepo = debt.NewDebtRepo(db)
	deps.DebtService = debt.NewDebtService(deps.DebtRepo)
	deps.DebtHandler = debt.NewDebtHandler(deps.DebtService)
	debt.SubscribeToTransactions(deps.EventBus, deps.DebtRepo)

	deps.AssetService = asset.NewAssetService(asset.NewAssetRepo(db))
	deps.AssetHandler = asset.NewAssetHandler(deps.AssetService)

	deps.ProjectService = project.NewProjectService(project.NewProjectRepo(db))
	deps.ProjectHandler = project.NewProjectHandler(deps.ProjectService)

	deps.ScheduleRepo = cashflow.NewScheduleRepo(db)
	deps.ScheduleService = cashflow.NewScheduleService(deps.ScheduleRepo, deps.BudgetRepo, deps.TransactionRepo)
	deps.ScheduleHandler = cashflow.NewScheduleHandler(deps.ScheduleService)

	return deps
}
