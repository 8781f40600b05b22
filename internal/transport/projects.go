package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"brandsmith/internal/brand"
	"brandsmith/internal/services"
)

type createProjectRequest struct {
	Name           string `json:"name"`
	InitialConcept string `json:"initialConcept"`
}

type setPhaseRequest struct {
	Phase string `json:"phase"`
}

type submitMessageRequest struct {
	Content string `json:"content"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", services.ErrInvalidInput, err)
	}
	return nil
}

func idParam(r *http.Request, name string) (uint, error) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: invalid %s", services.ErrInvalidInput, name)
	}
	return uint(n), nil
}

// caller returns the authenticated user and project id of a request.
func caller(r *http.Request) (userID, projectID uint, err error) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		return 0, 0, services.ErrUnauthorized
	}
	projectID, err = idParam(r, "projectID")
	return userID, projectID, err
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, s.log, services.ErrUnauthorized)
		return
	}
	projects, err := s.projects.List(r.Context(), userID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, s.log, services.ErrUnauthorized)
		return
	}
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	p, err := s.projects.Create(r.Context(), userID, req.Name, req.InitialConcept)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	p, err := s.projects.Get(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	if err := s.projects.Delete(r.Context(), userID, projectID); err != nil {
		writeError(w, s.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setPhase(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	var req setPhaseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	p, err := s.projects.SetPhase(r.Context(), userID, projectID, req.Phase)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	msgs, err := s.conversations.ListMessages(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) submitMessage(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	var req submitMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, s.log, err)
		return
	}
	reply, err := s.conversations.SubmitMessage(r.Context(), userID, projectID, req.Content)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) listConcepts(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	concepts, err := s.projects.ListConcepts(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, concepts)
}

func (s *Server) selectConcept(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	conceptID, err := idParam(r, "conceptID")
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	p, err := s.projects.SelectConcept(r.Context(), userID, projectID, conceptID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) progress(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	view, err := s.projects.Progress(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) toolkit(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	tk, err := s.projects.Toolkit(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tk)
}

func (s *Server) toolkitMarkdown(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := caller(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	tk, err := s.projects.Toolkit(r.Context(), userID, projectID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", brand.ToolkitFilename(tk.ProjectName)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tk.Markdown))
}
