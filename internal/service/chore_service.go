package service

import (
	"net/http"

	"github.com/chorecast/chorecast/internal/chores"
	"github.com/chorecast/chorecast/internal/models"
)

// ChoreService exposes the chore scheduling collaborator.
type ChoreService struct {
	chores *chores.Service
}

// NewChoreService creates a ChoreService over the given chore service.
func NewChoreService(c *chores.Service) *ChoreService {
	return &ChoreService{chores: c}
}

// Register installs the chore routes on the mux.
func (s *ChoreService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chores", s.handleCreateChore)
	mux.HandleFunc("GET /api/chores", s.handleListChores)
	mux.HandleFunc("GET /api/chores/overdue", s.handleOverdueChores)
	mux.HandleFunc("PUT /api/chores/{id}/complete", s.handleCompleteChore)
}

type createChoreRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Frequency   models.Frequency `json:"frequency"`
	AssignedTo  string           `json:"assigned_to"`
}

func (s *ChoreService) handleCreateChore(w http.ResponseWriter, r *http.Request) {
	var req createChoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	chore, err := s.chores.Create(r.Context(), chores.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chore)
}

func (s *ChoreService) handleListChores(w http.ResponseWriter, r *http.Request) {
	list, err := s.chores.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Chore{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *ChoreService) handleOverdueChores(w http.ResponseWriter, r *http.Request) {
	list, err := s.chores.Overdue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Chore{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *ChoreService) handleCompleteChore(w http.ResponseWriter, r *http.Request) {
	chore, err := s.chores.Complete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chore)
}
