package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	ParentID   string `json:"parentId,omitempty"`
	OrderIndex int    `json:"orderIndex"`
}

type CategoryHandler struct {
	service CategoryService
}

func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service}
}

func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toDTO(c))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "category name is required")
		return
	}

	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrTooDeep) || errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ID == "" || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "invalid category id in request body")
		return
	}

	ok, err := h.service.Update(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrTooDeep) || errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *CategoryHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	direction := MoveDirection(body.Direction)
	if direction != MoveUp && direction != MoveDown {
		rest.WriteError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}

	moved, err := h.service.Move(r.Context(), id, direction)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "category not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"moved": moved})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(c Category) CategoryDTO {
	return CategoryDTO{
		ID:         c.ID,
		Name:       c.Name,
		Type:       string(c.Type),
		ParentID:   c.ParentID,
		OrderIndex: c.OrderIndex,
	}
}

func fromDTO(dto CategoryDTO) Category {
	return Category{
		ID:         dto.ID,
		Name:       dto.Name,
		Type:       CategoryType(dto.Type),
		ParentID:   dto.ParentID,
		OrderIndex: dto.OrderIndex,
	}
}
