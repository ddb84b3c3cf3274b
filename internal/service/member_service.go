package service

import (
	"net/http"
	"strings"

	"github.com/chorecast/chorecast/internal/middleware"
	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/storage"
)

// MemberService exposes household member registration and listing. The
// identity collaborator authenticates members; this service only manages
// the member records the ledger references.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a MemberService over the given store.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// Register installs the member routes on the mux.
func (s *MemberService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/members", s.handleCreateMember)
	mux.HandleFunc("GET /api/members", s.handleListMembers)
	mux.HandleFunc("GET /api/members/me", s.handleCurrentMember)
}

type createMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *MemberService) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and email are required"})
		return
	}

	member := &models.Member{Name: req.Name, Email: req.Email}
	if err := s.store.CreateMember(r.Context(), member); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *MemberService) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListMembers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []*models.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *MemberService) handleCurrentMember(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	member, err := s.store.GetMember(r.Context(), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found: " + memberID})
		return
	}
	writeJSON(w, http.StatusOK, member)
}
