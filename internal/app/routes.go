package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Accounts
	r.HandleFunc("/api/account", deps.AccountHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/account", deps.AccountHandler.Create).Methods("POST")
	r.HandleFunc("/api/account/{id}", deps.AccountHandler.Get).Methods("GET")
	r.HandleFunc("/api/account/{id}", deps.AccountHandler.Update).Methods("PUT")
	r.HandleFunc("/api/account/{id}", deps.AccountHandler.Delete).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{id}/position", deps.CategoryHandler.Move).Methods("PUT")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Get).Methods("GET")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Budget report
	r.HandleFunc("/api/budget/report", deps.BudgetHandler.GetReport).Queries("periodType", "{periodType}", "period", "{period}").Methods("GET")
	r.HandleFunc("/api/budget/row", deps.BudgetHandler.CommitRow).Methods("PUT")
	r.HandleFunc("/api/budget/categories", deps.BudgetHandler.AddCategories).Methods("POST")

	// Recurring transactions
	r.HandleFunc("/api/recurrence/generate", deps.RecurrenceHandler.Generate).Methods("POST")

	// Cash-flow forecast
	r.HandleFunc("/api/forecast", deps.ForecastHandler.Get).Methods("GET")

	// Debts
	r.HandleFunc("/api/debt", deps.DebtHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/debt", deps.DebtHandler.Create).Methods("POST")
	r.HandleFunc("/api/debt/{id}", deps.DebtHandler.Get).Methods("GET")
	r.HandleFunc("/api/debt/{id}", deps.DebtHandler.Update).Methods("PUT")
	r.HandleFunc("/api/debt/{id}", deps.DebtHandler.Delete).Methods("DELETE")

	// Assets
	r.HandleFunc("/api/asset", deps.AssetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/asset", deps.AssetHandler.Create).Methods("POST")
	r.HandleFunc("/api/asset/{id}", deps.AssetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/asset/{id}", deps.AssetHandler.Delete).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Delete).Methods("DELETE")

	// Cash-flow schedule
	r.HandleFunc("/api/cashflow/schedule", deps.ScheduleHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/cashflow/schedule", deps.ScheduleHandler.CreateBatch).Methods("POST")
	r.HandleFunc("/api/cashflow/schedule/{id}", deps.ScheduleHandler.Update).Methods("PATCH")
	r.HandleFunc("/api/cashflow/schedule/{id}", deps.ScheduleHandler.Delete).Methods("DELETE")
}
