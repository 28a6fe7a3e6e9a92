package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/airbean/airbean-api/internal/entities"
	"github.com/airbean/airbean-api/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func (h *HTTPHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpsertMenuItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.catalog.CreateMenuItem(ctx, MenuItemJSONToEntity(req))
	if errors.Is(err, entities.ErrProductExists) {
		utils.WriteError(w, "product already exists", http.StatusConflict)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create menu item", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, MenuItem(req), http.StatusCreated)
}

func (h *HTTPHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpsertMenuItemRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.ID = chi.URLParam(r, "product_id")
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.catalog.UpdateMenuItem(ctx, MenuItemJSONToEntity(req))
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "product does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update menu item", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, MenuItem(req), http.StatusOK)
}

func (h *HTTPHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := chi.URLParam(r, "product_id")
	if err := h.validate.Var(productID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	err := h.catalog.DeleteMenuItem(ctx, productID)
	if errors.Is(err, entities.ErrProductNotFound) {
		utils.WriteError(w, "product does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete menu item", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCampaignRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if err := h.catalog.CreateCampaign(ctx, CampaignJSONToEntity(req)); err != nil {
		h.logger.ErrorContext(ctx, "failed to create campaign", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, Campaign(req), http.StatusCreated)
}
