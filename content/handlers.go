package content

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"broilers/models"
	"broilers/utils"

	"github.com/julienschmidt/httprouter"
)

const maxContentBody = 1 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	utils.RespondWithJSON(w, http.StatusOK, h.svc.Get(ctx))
}

func (h *Handler) GetContentKey(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key := models.ContentKey(ps.ByName("key"))
	value, err := h.svc.Value(ctx, key)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown content key")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"key": key, "value": value})
}

type updateRequest struct {
	Value json.RawMessage `json:"value"`
}

func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := models.ContentKey(ps.ByName("key"))
	if !key.Valid() {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown content key")
		return
	}

	var req updateRequest
	if err := utils.DecodeJSON(w, r, maxContentBody, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	doc, err := h.svc.Update(ctx, key, req.Value)
	switch {
	case errors.Is(err, ErrUnknownKey):
		utils.RespondWithError(w, http.StatusNotFound, "Unknown content key")
	case errors.Is(err, ErrInvalidValue):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		log.Printf("update content %s: %v", key, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save content")
	default:
		utils.RespondWithJSON(w, http.StatusOK, doc)
	}
}
