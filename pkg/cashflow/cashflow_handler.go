package cashflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
)

type ScheduleDTO struct {
	ID              string `json:"id"`
	ProjectID       string `json:"projectId"`
	CategoryID      string `json:"categoryId"`
	BudgetedAmount  string `json:"budgetedAmount"`
	ActualAmount    string `json:"actualAmount"`
	RemainingAmount string `json:"remainingAmount"`
	ScheduledMonth  string `json:"scheduledMonth"`
	ScheduledAmount string `json:"scheduledAmount"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
}

type ScheduleInputDTO struct {
	ProjectID       string `json:"projectId"`
	CategoryID      string `json:"categoryId"`
	ScheduledMonth  string `json:"scheduledMonth"`
	ScheduledAmount string `json:"scheduledAmount"`
	Notes           string `json:"notes,omitempty"`
}

type BatchResultDTO struct {
	Created []ScheduleDTO `json:"created"`
	Errors  []string      `json:"errors,omitempty"`
}

type ScheduleHandler struct {
	service ScheduleService
}

func NewScheduleHandler(service ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service}
}

func (h *ScheduleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		dtos = append(dtos, toScheduleDTO(s))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// CreateBatch accepts an array of entries and creates them independently.
func (h *ScheduleHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var dtos []ScheduleInputDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(dtos) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "at least one schedule entry is required")
		return
	}

	inputs := make([]ScheduleInput, 0, len(dtos))
	for _, dto := range dtos {
		inputs = append(inputs, ScheduleInput{
			ProjectID:       dto.ProjectID,
			CategoryID:      dto.CategoryID,
			ScheduledMonth:  dto.ScheduledMonth,
			ScheduledAmount: money.ParseAmount(dto.ScheduledAmount),
			Notes:           dto.Notes,
		})
	}

	created, errs := h.service.CreateBatch(r.Context(), inputs)

	result := BatchResultDTO{Created: make([]ScheduleDTO, 0, len(created))}
	for _, s := range created {
		result.Created = append(result.Created, toScheduleDTO(s))
	}
	for _, err := range errs {
		result.Errors = append(result.Errors, err.Error())
	}

	status := http.StatusCreated
	if len(created) == 0 && len(errs) > 0 {
		status = http.StatusBadRequest
	}
	rest.WriteJSON(w, status, result)
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto ScheduleInputDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), Schedule{
		ID:              id,
		ScheduledMonth:  dto.ScheduledMonth,
		ScheduledAmount: money.ParseAmount(dto.ScheduledAmount),
		Notes:           dto.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "schedule entry not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "schedule entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "schedule entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toScheduleDTO(s Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:              s.ID,
		ProjectID:       s.ProjectID,
		CategoryID:      s.CategoryID,
		BudgetedAmount:  s.BudgetedAmount.String(),
		ActualAmount:    s.ActualAmount.String(),
		RemainingAmount: s.RemainingAmount.String(),
		ScheduledMonth:  s.ScheduledMonth,
		ScheduledAmount: s.ScheduledAmount.String(),
		Notes:           s.Notes,
	}
	if !s.CreatedAt.IsZero() {
		dto.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return dto
}
