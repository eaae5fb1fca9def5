package recurrence

import (
	"net/http"

	"github.com/kasabook/kasabook/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ResultDTO struct {
	Generated int      `json:"generated"`
	Errors    []string `json:"errors"`
}

type RecurrenceHandler struct {
	service ExpanderService
}

func NewRecurrenceHandler(service ExpanderService) *RecurrenceHandler {
	return &RecurrenceHandler{service}
}

func (h *RecurrenceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating due recurring transactions")

	result, err := h.service.GenerateDue(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto := ResultDTO{Generated: result.Generated, Errors: []string{}}
	for _, e := range result.Errors {
		dto.Errors = append(dto.Errors, e.Error())
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}
