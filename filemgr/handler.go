package filemgr

import (
	"errors"
	"log"
	"net/http"

	"broilers/utils"

	"github.com/julienschmidt/httprouter"
)

// Upload accepts a multipart "image" field for the gallery or blog editor.
func (s *Store) Upload(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := Kind(ps.ByName("kind"))
	if !kind.Valid() {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown upload kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	stored, err := s.SaveImageWithThumb(file, kind)
	switch {
	case errors.Is(err, ErrFileTooLarge):
		utils.RespondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, ErrInvalidMIME), errors.Is(err, ErrNotAnImage):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		log.Printf("upload %s: %v", kind, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
	default:
		utils.RespondWithJSON(w, http.StatusCreated, stored)
	}
}
