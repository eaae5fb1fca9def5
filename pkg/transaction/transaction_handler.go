package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID              string `json:"id"`
	TransactionDate string `json:"transactionDate"`
	PLDate          string `json:"plDate,omitempty"`
	AccountID       string `json:"accountId"`
	Type            string `json:"type"`
	CategoryID      string `json:"categoryId,omitempty"`
	DebtID          string `json:"debtId,omitempty"`
	ProjectID       string `json:"projectId,omitempty"`
	ToAccountID     string `json:"toAccountId,omitempty"`

	// Amounts travel as strings so clients keep exact decimal values.
	AmountWithVat    string `json:"amountWithVat"`
	AmountWithoutVat string `json:"amountWithoutVat"`
	VatAmount        string `json:"vatAmount"`
	K2Amount         string `json:"k2Amount"`

	Notes string `json:"notes,omitempty"`

	IsRecurring         bool   `json:"isRecurring"`
	RecurrenceFrequency string `json:"recurrenceFrequency,omitempty"`
	RecurrenceInterval  int    `json:"recurrenceInterval,omitempty"`
	RecurrenceEndDate   string `json:"recurrenceEndDate,omitempty"`
	ParentTransactionID string `json:"parentTransactionId,omitempty"`
}

type TransactionHandler struct {
	service TransactionService
}

func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service}
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.service.List(r.Context(), filter)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, toTransactionDTO(t))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, toTransactionDTO(t))
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new transaction")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := fromTransactionDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), t)
	if err != nil {
		if isValidationError(err) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toTransactionDTO(created))
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ID == "" || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "invalid transaction id in request body")
		return
	}

	t, err := fromTransactionDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), t)
	if err != nil {
		if isValidationError(err) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "transaction not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, toTransactionDTO(t))
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "transaction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	filter := Filter{
		AccountID:   q.Get("accountId"),
		CategoryIDs: q["categoryId"],
	}

	projectIDs, err := ResolveProjectScope(q.Get("projectId"), q["projectIds"])
	if err != nil {
		return Filter{}, err
	}
	filter.ProjectIDs = projectIDs

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(dateFormat, raw)
		if err != nil {
			return Filter{}, errors.New("from must be formatted as YYYY-MM-DD")
		}
		filter.PLDateFrom = from
	}
	if raw := q.Get("until"); raw != "" {
		until, err := time.Parse(dateFormat, raw)
		if err != nil {
			return Filter{}, errors.New("until must be formatted as YYYY-MM-DD")
		}
		filter.PLDateUntil = until
	}
	if q.Get("templates") == "true" {
		filter.TemplatesOnly = true
	}
	return filter, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingAccount) ||
		errors.Is(err, ErrMissingToAccount) ||
		errors.Is(err, ErrSameAccountTransfer) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidRecurrence)
}

func toTransactionDTO(t Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:                  t.ID,
		TransactionDate:     t.TransactionDate.Format(dateFormat),
		PLDate:              t.PLDate.Format(dateFormat),
		AccountID:           t.AccountID,
		Type:                string(t.Type),
		CategoryID:          t.CategoryID,
		DebtID:              t.DebtID,
		ProjectID:           t.ProjectID,
		ToAccountID:         t.ToAccountID,
		AmountWithVat:       t.AmountWithVat.String(),
		AmountWithoutVat:    t.AmountWithoutVat.String(),
		VatAmount:           t.VatAmount.String(),
		K2Amount:            t.K2Amount.String(),
		Notes:               t.Notes,
		IsRecurring:         t.IsRecurring,
		RecurrenceFrequency: string(t.RecurrenceFrequency),
		RecurrenceInterval:  t.RecurrenceInterval,
		ParentTransactionID: t.ParentTransactionID,
	}
	if !t.RecurrenceEndDate.IsZero() {
		dto.RecurrenceEndDate = t.RecurrenceEndDate.Format(dateFormat)
	}
	return dto
}

func fromTransactionDTO(dto TransactionDTO) (Transaction, error) {
	transactionDate, err := time.Parse(dateFormat, dto.TransactionDate)
	if err != nil {
		return Transaction{}, errors.New("transactionDate must be formatted as YYYY-MM-DD")
	}

	t := Transaction{
		ID:                  dto.ID,
		TransactionDate:     transactionDate,
		AccountID:           dto.AccountID,
		Type:                TransactionType(dto.Type),
		CategoryID:          dto.CategoryID,
		DebtID:              dto.DebtID,
		ProjectID:           dto.ProjectID,
		ToAccountID:         dto.ToAccountID,
		AmountWithVat:       money.ParseAmount(dto.AmountWithVat),
		AmountWithoutVat:    money.ParseAmount(dto.AmountWithoutVat),
		VatAmount:           money.ParseAmount(dto.VatAmount),
		K2Amount:            money.ParseAmount(dto.K2Amount),
		Notes:               dto.Notes,
		IsRecurring:         dto.IsRecurring,
		RecurrenceFrequency: Frequency(dto.RecurrenceFrequency),
		RecurrenceInterval:  dto.RecurrenceInterval,
		ParentTransactionID: dto.ParentTransactionID,
	}
	if dto.PLDate != "" {
		t.PLDate, err = time.Parse(dateFormat, dto.PLDate)
		if err != nil {
			return Transaction{}, errors.New("plDate must be formatted as YYYY-MM-DD")
		}
	}
	if dto.RecurrenceEndDate != "" {
		t.RecurrenceEndDate, err = time.Parse(dateFormat, dto.RecurrenceEndDate)
		if err != nil {
			return Transaction{}, errors.New("recurrenceEndDate must be formatted as YYYY-MM-DD")
		}
	}
	return t, nil
}
