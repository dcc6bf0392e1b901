package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/cosmonaut-api/internal/app"
	"github.com/cosmonaut-api/internal/metrics"
	"github.com/cosmonaut-api/internal/models"
	"github.com/cosmonaut-api/internal/queue"
)

type CosmonautHandler struct {
	app *app.App
}

func NewCosmonautHandler(app *app.App) *CosmonautHandler {
	return &CosmonautHandler{app: app}
}

// List handles GET /cosmonauts/.
func (h *CosmonautHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.app.Cosmonauts.List(r.Context())
	if err != nil {
		h.fail(w, r, metrics.OpList, err)
		return
	}

	out := make([]models.Cosmonaut, 0, len(rows))
	for _, c := range rows {
		out = append(out, models.Cosmonaut{ID: c.ID, Name: c.Name, Age: c.Age})
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /cosmonauts/create. The row is inserted before the
// creation message is published; a failed publish does not undo the
// insert.
func (h *CosmonautHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, errs := decodeCosmonautIn(r)
	if errs != nil {
		writeValidationError(w, errs)
		return
	}

	id, err := h.app.Cosmonauts.Insert(r.Context(), *in.Name, *in.Age)
	if err != nil {
		h.fail(w, r, metrics.OpCreate, err)
		return
	}

	err = h.app.Publisher.Publish(r.Context(), queue.Message{Name: *in.Name, Age: *in.Age})
	h.app.Metrics.RecordPublish(err)
	if err != nil {
		h.fail(w, r, metrics.OpPublish, err, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, models.CreatedCosmonaut{
		ID:   strconv.FormatInt(id, 10),
		Name: *in.Name,
		Age:  *in.Age,
	})
}

// Delete handles DELETE /cosmonauts/{id}.
func (h *CosmonautHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, errs := pathID(r)
	if errs != nil {
		writeValidationError(w, errs)
		return
	}

	n, err := h.app.Cosmonauts.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, metrics.OpDelete, err)
		return
	}
	if n == 0 {
		WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: msgDeleted})
}

// Update handles PUT /cosmonauts/{id}. The response echoes the request
// rather than re-reading the row.
func (h *CosmonautHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, pathErrs := pathID(r)
	in, bodyErrs := decodeCosmonautIn(r)
	if errs := append(pathErrs, bodyErrs...); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	n, err := h.app.Cosmonauts.Update(r.Context(), id, *in.Name, *in.Age)
	if err != nil {
		h.fail(w, r, metrics.OpUpdate, err)
		return
	}
	if n == 0 {
		WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, models.Cosmonaut{ID: id, Name: *in.Name, Age: *in.Age})
}

func (h *CosmonautHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error, kv ...any) {
	h.app.Metrics.IncError(op)
	fields := append([]any{"op", op, "requestID", middleware.GetReqID(r.Context()), "error", err}, kv...)
	h.app.Log.Errorw("request failed", fields...)
	WriteError(w, http.StatusInternalServerError, msgInternalError)
}
