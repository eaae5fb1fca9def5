package asset

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kasabook/kasabook/internal/rest"
	"github.com/kasabook/kasabook/pkg/money"
)

type AssetDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	Value        string `json:"value"`
	Currency     string `json:"currency"`
	PurchaseDate string `json:"purchaseDate,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type AssetHandler struct {
	service AssetService
}

func NewAssetHandler(service AssetService) *AssetHandler {
	return &AssetHandler{service}
}

func (h *AssetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]AssetDTO, 0, len(assets))
	for _, a := range assets {
		dtos = append(dtos, toAssetDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto AssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "asset name is required")
		return
	}

	a, err := fromAssetDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), a)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toAssetDTO(created))
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto AssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ID == "" || dto.ID != id {
		rest.WriteError(w, http.StatusBadRequest, "invalid asset id in request body")
		return
	}

	a, err := fromAssetDTO(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), a)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "asset not found")
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ok, err := h.service.Delete(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "asset not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toAssetDTO(a Asset) AssetDTO {
	dto := AssetDTO{
		ID:       a.ID,
		Name:     a.Name,
		Type:     a.Type,
		Value:    a.Value.String(),
		Currency: a.Currency,
		Notes:    a.Notes,
	}
	if !a.PurchaseDate.IsZero() {
		dto.PurchaseDate = a.PurchaseDate.Format(dateFormat)
	}
	return dto
}

func fromAssetDTO(dto AssetDTO) (Asset, error) {
	a := Asset{
		ID:       dto.ID,
		Name:     dto.Name,
		Type:     dto.Type,
		Value:    money.ParseAmount(dto.Value),
		Currency: dto.Currency,
		Notes:    dto.Notes,
	}
	if dto.PurchaseDate != "" {
		parsed, err := time.Parse(dateFormat, dto.PurchaseDate)
		if err != nil {
			return Asset{}, errors.New("purchaseDate must be formatted as YYYY-MM-DD")
		}
		a.PurchaseDate = parsed
	}
	return a, nil
}
