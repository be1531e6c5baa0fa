package repository

import (
	"github.com/flexprice/budgetpdf/internal/domain/budget"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/postgres"
	postgresRepo "github.com/flexprice/budgetpdf/internal/repository/postgres"
)

// NewBudgetRepository builds the Postgres-backed budget reader
func NewBudgetRepository(db *postgres.DB, logger *logger.Logger) budget.Repository {
	return postgresRepo.NewBudgetRepository(db, logger)
}
