package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
	"github.com/kasabook/kasabook/pkg/period"
)

type ProjectDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Budget      string `json:"budget"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

type ProjectHandler struct {
	service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{service}
}

func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var projects []Project
	var err error
	if periodType := q.Get("periodType"); periodType != "" {
		// Scope to projects running within the selected period.
		var rng period.Range
		rng, err = period.Resolve(period.Type(periodType), q.Get("period"))
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		projects, err = h.service.GetOverlapping(r.Context(), rng.Start, rng.EndExclusive)
	} else {
		projects, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, toProjectDTO(p))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "project name is required")
		return
	}

	p, err := fromProjectDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), p)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toProjectDTO(created))
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ID == "" || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "invalid project id in request body")
		return
	}

	p, err := fromProjectDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "project not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toProjectDTO(p Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Budget:      p.Budget.String(),
		Status:      string(p.Status),
	}
	if !p.StartDate.IsZero() {
		dto.StartDate = p.StartDate.Format(dateFormat)
	}
	if !p.EndDate.IsZero() {
		dto.EndDate = p.EndDate.Format(dateFormat)
	}
	return dto
}

func fromProjectDTO(dto ProjectDTO) (Project, error) {
	p := Project{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		Budget:      money.ParseAmount(dto.Budget),
		Status:      ProjectStatus(dto.Status),
	}
	if dto.StartDate != "" {
		parsed, err := time.Parse(dateFormat, dto.StartDate)
		if err != nil {
			return Project{}, errors.New("startDate must be formatted as YYYY-MM-DD")
		}
		p.StartDate = parsed
	}
	if dto.EndDate != "" {
		parsed, err := time.Parse(dateFormat, dto.EndDate)
		if err != nil {
			return Project{}, errors.New("endDate must be formatted as YYYY-MM-DD")
		}
		p.EndDate = parsed
	}
	return p, nil
}
