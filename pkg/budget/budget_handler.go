package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
	"github.com/kasabook/kasabook/pkg/period"
	log "github.com/sirupsen/logrus"
)

type CellDTO struct {
	K1WithVat           string `json:"k1WithVat"`
	K1WithoutVat        string `json:"k1WithoutVat"`
	Vat                 string `json:"vat"`
	K2                  string `json:"k2"`
	TotalWithoutVat     string `json:"totalWithoutVat"`
	TotalWithVat        string `json:"totalWithVat"`
	ActualWithoutVat    string `json:"actualWithoutVat"`
	ActualWithVat       string `json:"actualWithVat"`
	DeviationWithVat    string `json:"deviationWithVat"`
	DeviationWithoutVat string `json:"deviationWithoutVat"`
}

type CategoryRowDTO struct {
	CategoryID   string             `json:"categoryId"`
	CategoryName string             `json:"categoryName"`
	Type         string             `json:"type"`
	Months       map[string]CellDTO `json:"months,omitempty"`
	Total        CellDTO            `json:"total"`
	Children     []CategoryRowDTO   `json:"children,omitempty"`
}

type ReportDTO struct {
	PeriodType string   `json:"periodType"`
	Period     string   `json:"period"`
	Label      string   `json:"label"`
	ReadOnly   bool     `json:"readOnly"`
	Months     []string `json:"months"`

	Income  []CategoryRowDTO `json:"income"`
	Expense []CategoryRowDTO `json:"expense"`

	IncomeTotal  CellDTO `json:"incomeTotal"`
	ExpenseTotal CellDTO `json:"expenseTotal"`
	NetTotal     CellDTO `json:"netTotal"`
}

type RowCommitDTO struct {
	CategoryID string `json:"categoryId"`
	ProjectID  string `json:"projectId,omitempty"`
	Month      string `json:"month"`
	Field      string `json:"field"`
	Value      string `json:"value"`

	// Current row state; the service recomputes the dependent columns.
	K1WithVat    string `json:"k1WithVat"`
	K1WithoutVat string `json:"k1WithoutVat"`
	K2           string `json:"k2"`
}

type AddCategoriesDTO struct {
	Month       string   `json:"month"`
	ProjectID   string   `json:"projectId,omitempty"`
	CategoryIDs []string `json:"categoryIds"`
}

type BudgetHandler struct {
	service BudgetService
}

func NewBudgetHandler(service BudgetService) *BudgetHandler {
	return &BudgetHandler{service}
}

func (h *BudgetHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	periodType := q.Get("periodType")
	periodToken := q.Get("period")
	projectID := q.Get("projectId")

	report, err := h.service.GetReport(r.Context(), periodType, periodToken, projectID)
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, toReportDTO(report))
}

func (h *BudgetHandler) CommitRow(w http.ResponseWriter, r *http.Request) {
	log.Debug("Committing budget row")

	var dto RowCommitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.CategoryID == "" || dto.Month == "" {
		rest.WriteError(w, http.StatusBadRequest, "categoryId and month are required")
		return
	}

	row := Row{
		CategoryID:   dto.CategoryID,
		ProjectID:    dto.ProjectID,
		Month:        dto.Month,
		K1WithVat:    money.ParseAmount(dto.K1WithVat),
		K1WithoutVat: money.ParseAmount(dto.K1WithoutVat),
		K2:           money.ParseAmount(dto.K2),
	}

	committed, err := h.service.CommitRow(r.Context(), row, EditableField(dto.Field), money.ParseAmount(dto.Value))
	if err != nil {
		if errors.Is(err, ErrUnknownField) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{
		"id":              committed.ID,
		"k1WithVat":       committed.K1WithVat.String(),
		"k1WithoutVat":    committed.K1WithoutVat.String(),
		"vat":             committed.Vat.String(),
		"k2":              committed.K2.String(),
		"totalWithoutVat": committed.TotalWithoutVat.String(),
		"totalWithVat":    committed.TotalWithVat.String(),
	})
}

func (h *BudgetHandler) AddCategories(w http.ResponseWriter, r *http.Request) {
	var dto AddCategoriesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Month == "" || len(dto.CategoryIDs) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "month and categoryIds are required")
		return
	}

	added, errs := h.service.AddCategories(r.Context(), dto.Month, dto.ProjectID, dto.CategoryIDs)

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	rest.WriteJSON(w, http.StatusOK, map[string]any{
		"added":  added,
		"errors": messages,
	})
}

func toCellDTO(c Cell) CellDTO {
	return CellDTO{
		K1WithVat:           c.K1WithVat.String(),
		K1WithoutVat:        c.K1WithoutVat.String(),
		Vat:                 c.Vat.String(),
		K2:                  c.K2.String(),
		TotalWithoutVat:     c.TotalWithoutVat.String(),
		TotalWithVat:        c.TotalWithVat.String(),
		ActualWithoutVat:    c.ActualWithoutVat.String(),
		ActualWithVat:       c.ActualWithVat.String(),
		DeviationWithVat:    c.DeviationWithVat().String(),
		DeviationWithoutVat: c.DeviationWithoutVat().String(),
	}
}

func toCategoryRowDTO(row CategoryRow) CategoryRowDTO {
	dto := CategoryRowDTO{
		CategoryID:   row.Category.ID,
		CategoryName: row.Category.Name,
		Type:         string(row.Type),
		Total:        toCellDTO(row.Total),
	}
	if len(row.Cells) > 0 {
		dto.Months = make(map[string]CellDTO, len(row.Cells))
		for month, cell := range row.Cells {
			dto.Months[month] = toCellDTO(cell)
		}
	}
	for _, child := range row.Children {
		dto.Children = append(dto.Children, toCategoryRowDTO(child))
	}
	return dto
}

func toReportDTO(report Report) ReportDTO {
	dto := ReportDTO{
		PeriodType:   report.PeriodType,
		Period:       report.Period,
		Label:        report.Label,
		ReadOnly:     report.ReadOnly,
		Months:       report.Result.Months,
		IncomeTotal:  toCellDTO(report.Result.IncomeTotal),
		ExpenseTotal: toCellDTO(report.Result.ExpenseTotal),
		NetTotal:     toCellDTO(report.Result.NetTotal),
	}
	for _, row := range report.Result.Income {
		dto.Income = append(dto.Income, toCategoryRowDTO(row))
	}
	for _, row := range report.Result.Expense {
		dto.Expense = append(dto.Expense, toCategoryRowDTO(row))
	}
	return dto
}
