package forecast

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kasabook/kasabook/internal/rest"
)

type PointDTO struct {
	MonthIndex int    `json:"monthIndex"`
	Date       string `json:"date"`
	Income     string `json:"income"`
	Expense    string `json:"expense"`
	Balance    string `json:"balance"`
}

type ProjectionDTO struct {
	Points       []PointDTO `json:"points"`
	TotalIncome  string     `json:"totalIncome"`
	TotalExpense string     `json:"totalExpense"`
	NetChange    string     `json:"netChange"`
	FinalBalance string     `json:"finalBalance"`
}

type ForecastHandler struct {
	service              ForecastService
	defaultHorizonMonths int
}

func NewForecastHandler(service ForecastService, defaultHorizonMonths int) *ForecastHandler {
	return &ForecastHandler{service: service, defaultHorizonMonths: defaultHorizonMonths}
}

func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	horizon := h.defaultHorizonMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "months must be an integer")
			return
		}
		horizon = parsed
	}

	projection, err := h.service.Forecast(r.Context(), horizon)
	if err != nil {
		if errors.Is(err, ErrInvalidHorizon) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto := ProjectionDTO{
		TotalIncome:  projection.TotalIncome.String(),
		TotalExpense: projection.TotalExpense.String(),
		NetChange:    projection.NetChange.String(),
		FinalBalance: projection.FinalBalance.String(),
	}
	for _, p := range projection.Points {
		dto.Points = append(dto.Points, PointDTO{
			MonthIndex: p.MonthIndex,
			Date:       p.Date.Format("2006-01-02"),
			Income:     p.Income.String(),
			Expense:    p.Expense.String(),
			Balance:    p.Balance.String(),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}
