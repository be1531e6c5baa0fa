package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/flexprice/budgetpdf/internal/domain/budget"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/flexprice/budgetpdf/internal/logger"
	"github.com/flexprice/budgetpdf/internal/postgres"
	"github.com/flexprice/budgetpdf/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const getBudgetQuery = `
SELECT b.id, b.numero, b.data::text AS data, b.validade::text AS validade,
       b.total, b.logo_data, b.observacoes,
       c.nome AS client_nome, c.telefone AS client_telefone, c.email AS client_email,
       u.nome AS user_nome, u.telefone AS user_telefone, u.email AS user_email,
       u.tipo_servico AS user_tipo_servico, u.brand_color AS user_brand_color
FROM budgets b
JOIN clients c ON b.client_id = c.id
JOIN users u ON b.user_id = u.id
WHERE b.id = $1 AND b.user_id = $2`

const listBudgetItemsQuery = `
SELECT descricao, quantidade, valor_unitario, unidade
FROM budget_items
WHERE budget_id = $1
ORDER BY id`

type budgetRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	now    func() time.Time
}

func NewBudgetRepository(db *postgres.DB, logger *logger.Logger) budget.Repository {
	return &budgetRepository{db: db, logger: logger, now: time.Now}
}

type budgetRow struct {
	ID              int64           `db:"id"`
	Numero          int             `db:"numero"`
	Data            sql.NullString  `db:"data"`
	Validade        sql.NullString  `db:"validade"`
	Total           decimal.Decimal `db:"total"`
	LogoData        sql.NullString  `db:"logo_data"`
	Observacoes     sql.NullString  `db:"observacoes"`
	ClientNome      sql.NullString  `db:"client_nome"`
	ClientTelefone  sql.NullString  `db:"client_telefone"`
	ClientEmail     sql.NullString  `db:"client_email"`
	UserNome        sql.NullString  `db:"user_nome"`
	UserTelefone    sql.NullString  `db:"user_telefone"`
	UserEmail       sql.NullString  `db:"user_email"`
	UserTipoServico sql.NullString  `db:"user_tipo_servico"`
	UserBrandColor  sql.NullString  `db:"user_brand_color"`
}

type budgetItemRow struct {
	Descricao     string          `db:"descricao"`
	Quantidade    decimal.Decimal `db:"quantidade"`
	ValorUnitario decimal.Decimal `db:"valor_unitario"`
	Unidade       sql.NullString  `db:"unidade"`
}

func (r *budgetRepository) GetDocument(ctx context.Context, userID int64, budgetID int64) (*budget.Document, error) {
	q := r.db.GetQuerier(ctx)

	var row budgetRow
	if err := q.GetContext(ctx, &row, getBudgetQuery, budgetID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("Budget %d not found", budgetID).
				WithReportableDetails(map[string]any{
					"budget_id": budgetID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load budget").
			Mark(ierr.ErrDatabase)
	}

	var items []budgetItemRow
	if err := q.SelectContext(ctx, &items, listBudgetItemsQuery, budgetID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load budget items").
			Mark(ierr.ErrDatabase)
	}

	doc := r.toDocument(&row)
	doc.Items = lo.Map(items, func(item budgetItemRow, _ int) budget.LineItem {
		return budget.LineItem{
			Description: item.Descricao,
			Quantity:    item.Quantidade,
			Unit:        item.Unidade.String,
			UnitPrice:   item.ValorUnitario,
		}
	})
	return doc, nil
}

func (r *budgetRepository) toDocument(row *budgetRow) *budget.Document {
	issued, err := types.ParseDate(row.Data.String)
	if err != nil {
		r.logger.Warnw("budget has no valid issue date, using load time",
			"budget_id", row.ID,
			"data", row.Data.String)
		issued = r.now()
	}

	doc := &budget.Document{
		Number:       row.Numero,
		IssueDate:    issued,
		ValidityDays: budget.ParseDays(row.Validade.String),
		Total:        row.Total,
		Notes:        row.Observacoes.String,
		AccentColor:  row.UserBrandColor.String,
		Provider: budget.Party{
			Name:        row.UserNome.String,
			Phone:       row.UserTelefone.String,
			Email:       row.UserEmail.String,
			ServiceType: row.UserTipoServico.String,
		},
		Client: budget.Party{
			Name:  row.ClientNome.String,
			Phone: row.ClientTelefone.String,
			Email: row.ClientEmail.String,
		},
	}

	if payload := strings.TrimSpace(row.LogoData.String); payload != "" {
		logo, err := types.DecodeImagePayload(payload)
		if err != nil {
			r.logger.Warnw("budget logo is not valid base64, ignoring it",
				"budget_id", row.ID,
				"error", err)
		} else {
			doc.Logo = logo
		}
	}
	return doc
}
