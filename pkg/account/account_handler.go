package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
	log "github.com/sirupsen/logrus"
)

type AccountDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Location       string `json:"location,omitempty"`
	InitialBalance string `json:"initialBalance"`
	CurrentBalance string `json:"currentBalance,omitempty"`
	Currency       string `json:"currency"`
}

type AccountHandler struct {
	service AccountService
}

func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service}
}

func (h *AccountHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, toAccountDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "account not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, toAccountDTO(a))
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new account")

	var dto AccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "account name is required")
		return
	}

	created, err := h.service.Create(r.Context(), fromAccountDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidType) || errors.Is(err, ErrInvalidLocation) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toAccountDTO(AccountWithBalance{
		Account:        created,
		CurrentBalance: created.InitialBalance,
	}))
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto AccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ID == "" || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "invalid account id in request body")
		return
	}

	ok, err := h.service.Update(r.Context(), fromAccountDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidType) || errors.Is(err, ErrInvalidLocation) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "account not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInUse) {
			rest.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "account not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAccountDTO(a AccountWithBalance) AccountDTO {
	return AccountDTO{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		Location:       string(a.Location),
		InitialBalance: a.InitialBalance.String(),
		CurrentBalance: a.CurrentBalance.String(),
		Currency:       a.Currency,
	}
}

func fromAccountDTO(dto AccountDTO) Account {
	return Account{
		ID:             dto.ID,
		Name:           dto.Name,
		Type:           AccountType(dto.Type),
		Location:       AccountLocation(dto.Location),
		InitialBalance: money.ParseAmount(dto.InitialBalance),
		Currency:       dto.Currency,
	}
}
