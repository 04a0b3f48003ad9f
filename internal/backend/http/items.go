package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/service"
	"github.com/hatchery/hatchd/internal/backend/store"
	"github.com/hatchery/hatchd/pkg/httpx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

// ItemsHandler serves the placeholder CRUD resource. Every route requires a
// valid bearer token and an active account.
type ItemsHandler struct {
	ItemService    *service.ItemService
	SessionService *service.SessionService
}

// requireActiveUser resolves the verified token subject to an account and
// enforces the active check. It writes the error response itself and returns
// false when the request must not proceed.
func (h *ItemsHandler) requireActiveUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	ctx := r.Context()

	subject := httpx.SubjectFromCtx(ctx)
	if subject == "" {
		httpx.Unauthorized(w, "Not authenticated")
		return domain.User{}, false
	}

	u, err := h.SessionService.ResolveSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSubject) {
			httpx.Unauthorized(w, "Could not validate credentials")
			return domain.User{}, false
		}
		slogx.FromContext(ctx).Error("subject lookup failed", "err", err)
		httpx.Internal(w, r)
		return domain.User{}, false
	}

	if !u.IsActive {
		httpx.Error(w, http.StatusBadRequest, "Inactive user")
		return domain.User{}, false
	}
	return u, true
}

func (h *ItemsHandler) decodeItem(w http.ResponseWriter, r *http.Request) (ItemRequest, bool) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return ItemRequest{}, false
	}
	if err := req.Validate(); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "Invalid item payload: "+err.Error())
		return ItemRequest{}, false
	}
	return req, true
}

func itemResponse(it domain.Item) ItemResponse {
	return ItemResponse{ItemID: it.ID, Name: it.Name, Price: it.Price}
}

// HandleList handles GET /api/v1/items.
func (h *ItemsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	u, ok := h.requireActiveUser(w, r)
	if !ok {
		return
	}

	items, err := h.ItemService.ListItems(ctx)
	if err != nil {
		log.Error("list items failed", "err", err)
		httpx.Internal(w, r)
		return
	}

	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse(it))
	}
	log.Info("items fetched", "username", u.Username, "count", len(out))
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/v1/items/{id}.
func (h *ItemsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.requireActiveUser(w, r); !ok {
		return
	}

	it, err := h.ItemService.GetItem(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Item not found")
			return
		}
		slogx.FromContext(ctx).Error("get item failed", "err", err)
		httpx.Internal(w, r)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, itemResponse(it))
}

// HandleCreate handles POST /api/v1/items.
func (h *ItemsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if _, ok := h.requireActiveUser(w, r); !ok {
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	it, err := h.ItemService.CreateItem(ctx, req.Name, req.Price)
	if err != nil {
		log.Error("create item failed", "err", err)
		httpx.Internal(w, r)
		return
	}

	log.Info("item created", "item_id", it.ID, "name", it.Name)
	httpx.WriteJSON(w, http.StatusOK, itemResponse(it))
}

// HandleUpdate handles PUT /api/v1/items/{id}.
func (h *ItemsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if _, ok := h.requireActiveUser(w, r); !ok {
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	it, err := h.ItemService.UpdateItem(ctx, r.PathValue("id"), req.Name, req.Price)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Item not found")
			return
		}
		log.Error("update item failed", "err", err)
		httpx.Internal(w, r)
		return
	}

	log.Info("item updated", "item_id", it.ID, "name", it.Name)
	httpx.WriteJSON(w, http.StatusOK, itemResponse(it))
}

// HandleDelete handles DELETE /api/v1/items/{id}.
func (h *ItemsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if _, ok := h.requireActiveUser(w, r); !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.ItemService.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Item not found")
			return
		}
		log.Error("delete item failed", "err", err)
		httpx.Internal(w, r)
		return
	}

	log.Info("item deleted", "item_id", id)
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Item deleted successfully"})
}
