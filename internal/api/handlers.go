package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/services"
	"github.com/go-chi/chi/v5"
)

type masterPasswordRequest struct {
	MasterPassword string `json:"master_password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type passwordResponse struct {
	Password string `json:"password"`
}

type backupResponse struct {
	Key string `json:"key"`
}

// Status handles GET /api/status
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	st, err := s.auth.Status(r.Context())
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// Setup handles POST /api/setup
func (s *Server) Setup(w http.ResponseWriter, r *http.Request) {
	var req masterPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.auth.Setup(r.Context(), req.MasterPassword)
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Message: "vault configured", Token: token})
}

// Login handles POST /api/login
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req masterPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.auth.Login(r.Context(), req.MasterPassword)
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Message: "session started", Token: token})
}

// Logout handles POST /api/logout
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r.Context())
	respondJSON(w, http.StatusOK, messageResponse{Message: "session closed"})
}

// ListPasswords handles GET /api/passwords
func (s *Server) ListPasswords(w http.ResponseWriter, r *http.Request) {
	list, err := s.records.List(r.Context())
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	if list == nil {
		list = []models.RecordView{}
	}
	respondJSON(w, http.StatusOK, list)
}

// CreatePassword handles POST /api/passwords
func (s *Server) CreatePassword(w http.ResponseWriter, r *http.Request) {
	var in models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.records.Create(r.Context(), in)
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "password saved"})
}

// UpdatePassword handles PUT /api/passwords/{id}
func (s *Server) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	var patch models.RecordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.records.Update(r.Context(), id, patch); err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "entry updated"})
}

// DeletePassword handles DELETE /api/passwords/{id}
func (s *Server) DeletePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	if err := s.records.Delete(r.Context(), id); err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "entry deleted"})
}

// GeneratePassword handles GET /api/generate-password?length=&symbols=
func (s *Server) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	length := services.DefaultGenerateLength
	symbols := true

	q := r.URL.Query()
	if v := q.Get("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "length must be an integer")
			return
		}
		length = n
	}
	if v := q.Get("symbols"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "symbols must be a boolean")
			return
		}
		symbols = b
	}

	pw, err := s.records.Generate(length, symbols)
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, passwordResponse{Password: pw})
}

// Backup handles POST /api/backup
func (s *Server) Backup(w http.ResponseWriter, r *http.Request) {
	key, err := s.backup.Export(r.Context())
	if err != nil {
		s.respondServiceError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, backupResponse{Key: key})
}

func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "invalid entry id")
		return 0, false
	}
	return id, true
}
