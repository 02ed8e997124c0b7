package auth

import (
	"errors"
	"log"
	"net/http"

	"broilers/utils"

	"github.com/julienschmidt/httprouter"
)

type loginRequest struct {
	Password string `json:"password"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := utils.DecodeJSON(w, r, 4<<10, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	token, expires, err := h.svc.Login(req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrLoginDisabled):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		log.Printf("login: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "expiresAt": expires})
}
