package server

import (
	"errors"
	"net/http"

	apperrors "github.com/ktsarnakliyski/JobSpresso/internal/errors"
	"github.com/ktsarnakliyski/JobSpresso/internal/types"
)

// voicesHandler handles the voice profile collection endpoint
func (s *Server) voicesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listVoiceProfiles(w)
	case http.MethodPost:
		s.createVoiceProfile(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// voiceByIDHandler handles the single voice profile endpoint
func (s *Server) voiceByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeErrorResponse(w, "Missing profile ID", "profile ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getVoiceProfile(w, id)
	case http.MethodPut:
		s.updateVoiceProfile(w, r, id)
	case http.MethodDelete:
		s.deleteVoiceProfile(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listVoiceProfiles(w http.ResponseWriter) {
	writeJSONResponse(w, http.StatusOK, s.Voices.List())
}

func (s *Server) createVoiceProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.VoiceProfile
	if err := parseJSONRequest(r, &profile); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	created, err := s.Voices.Create(profile)
	if err != nil {
		s.writeVoiceError(w, err)
		return
	}

	s.Logger.Info("Voice profile created",
		"profile_id", created.ID,
		"profile_name", created.Name)
	writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Server) getVoiceProfile(w http.ResponseWriter, id string) {
	profile, err := s.Voices.Get(id)
	if err != nil {
		s.writeVoiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, profile)
}

func (s *Server) updateVoiceProfile(w http.ResponseWriter, r *http.Request, id string) {
	var profile types.VoiceProfile
	if err := parseJSONRequest(r, &profile); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := s.Voices.Update(id, profile)
	if err != nil {
		s.writeVoiceError(w, err)
		return
	}

	s.Logger.Info("Voice profile updated",
		"profile_id", updated.ID,
		"profile_name", updated.Name)
	writeJSONResponse(w, http.StatusOK, updated)
}

func (s *Server) deleteVoiceProfile(w http.ResponseWriter, id string) {
	if err := s.Voices.Delete(id); err != nil {
		s.writeVoiceError(w, err)
		return
	}

	s.Logger.Info("Voice profile deleted", "profile_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// writeVoiceError maps voice store errors to HTTP status codes
func (s *Server) writeVoiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeProfileNotFound {
		writeErrorResponse(w, "Voice profile not found", appErr.Message, http.StatusNotFound)
		return
	}
	if apperrors.IsValidation(err) {
		writeErrorResponse(w, "Invalid voice profile", err.Error(), http.StatusBadRequest)
		return
	}
	s.Logger.LogError(err, "Voice profile operation failed")
	writeErrorResponse(w, "Voice profile operation failed", "internal error", http.StatusInternalServerError)
}
