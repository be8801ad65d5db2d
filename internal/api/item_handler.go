package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rgordon/item-api/internal/api/shared"
	"github.com/rgordon/item-api/internal/domain"
	"github.com/rgordon/item-api/internal/store"
)

// ItemProcessor abstracts the batch item processor for the HTTP layer.
type ItemProcessor interface {
	// ProcessAll concurrently transitions every known item to PROCESSED and
	// returns the successfully processed items.
	ProcessAll(ctx context.Context) ([]*domain.Item, error)
}

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemStore store.ItemStore
	processor ItemProcessor
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(
	itemStore store.ItemStore,
	itemProcessor ItemProcessor,
	logger *slog.Logger,
) *ItemHandler {
	if itemStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("item store cannot be nil for ItemHandler")
	}
	if itemProcessor == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("item processor cannot be nil for ItemHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		itemStore: itemStore,
		processor: itemProcessor,
		logger:    logger.With(slog.String("component", "item_handler")),
	}
}

// itemIDFromRequest extracts and parses the {id} path parameter.
func itemIDFromRequest(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListItems handles GET /api/items requests.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.FindAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}

// GetItem handles GET /api/items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	item, err := h.itemStore.FindByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// CreateItem handles POST /api/items requests.
// Invalid payloads get a 400 with per-field validation messages; the store
// is never called for them.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorMap(err))
		return
	}

	item := req.toDomain()
	if err := item.Validate(); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, DomainValidationErrorMap(err))
		return
	}

	saved, err := h.itemStore.Save(r.Context(), item)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("item created", slog.Int64("item_id", saved.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(saved))
}

// UpdateItem handles PUT /api/items/{id} requests.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var req ItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorMap(err))
		return
	}

	existing, err := h.itemStore.FindByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	item := req.toDomain()
	item.ID = id
	item.CreatedAt = existing.CreatedAt
	if err := item.Validate(); err != nil {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, DomainValidationErrorMap(err))
		return
	}

	saved, err := h.itemStore.Save(r.Context(), item)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("item updated", slog.Int64("item_id", saved.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(saved))
}

// DeleteItem handles DELETE /api/items/{id} requests.
// Existence is checked before deleting; a missing item gets a 404 and no
// delete is attempted.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	if _, err := h.itemStore.FindByID(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	if err := h.itemStore.DeleteByID(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("item deleted", slog.Int64("item_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// ProcessItems handles GET /api/items/process requests.
// It runs the whole batch synchronously and returns the successfully
// processed items, or a 500 when the batch itself fails.
func (h *ItemHandler) ProcessItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.processor.ProcessAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), SafeErrorMessage(err), err)
		return
	}

	h.logger.Info("batch processing finished", slog.Int("processed_count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}
