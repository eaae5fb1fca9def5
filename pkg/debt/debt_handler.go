package debt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
)

type DebtDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	InitialAmount string `json:"initialAmount"`
	CurrentAmount string `json:"currentAmount"`
	InterestRate  string `json:"interestRate,omitempty"`
	Currency      string `json:"currency"`
	Notes         string `json:"notes,omitempty"`
}

type DebtHandler struct {
	service DebtService
}

func NewDebtHandler(service DebtService) *DebtHandler {
	return &DebtHandler{service}
}

func (h *DebtHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	debts, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]DebtDTO, 0, len(debts))
	for _, d := range debts {
		dtos = append(dtos, toDebtDTO(d))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "debt not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDebtDTO(d))
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto DebtDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "debt name is required")
		return
	}

	created, err := h.service.Create(r.Context(), fromDebtDTO(dto))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDebtDTO(created))
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto DebtDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ID == "" || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "invalid debt id in request body")
		return
	}

	ok, err := h.service.Update(r.Context(), fromDebtDTO(dto))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "debt not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "debt not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDebtDTO(d Debt) DebtDTO {
	return DebtDTO{
		ID:            d.ID,
		Name:          d.Name,
		InitialAmount: d.InitialAmount.String(),
		CurrentAmount: d.CurrentAmount.String(),
		InterestRate:  d.InterestRate.String(),
		Currency:      d.Currency,
		Notes:         d.Notes,
	}
}

func fromDebtDTO(dto DebtDTO) Debt {
	return Debt{
		ID:            dto.ID,
		Name:          dto.Name,
		InitialAmount: money.ParseAmount(dto.InitialAmount),
		CurrentAmount: money.ParseAmount(dto.CurrentAmount),
		InterestRate:  money.ParseAmount(dto.InterestRate),
		Currency:      dto.Currency,
		Notes:         dto.Notes,
	}
}
