package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/quadbot-core/internal/robot"
)

// handleListRobots returns all enrolled robots.
func (s *Server) handleListRobots(w http.ResponseWriter, r *http.Request) {
	robots, err := s.registry.List(r.Context())
	if err != nil {
		s.logger.Error("listing robots failed", "error", err)
		writeInternalError(w, "failed to list robots")
		return
	}
	if robots == nil {
		robots = []robot.Robot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"robots": robots})
}

// handleGetRobot returns a single robot by ID.
func (s *Server) handleGetRobot(w http.ResponseWriter, r *http.Request) {
	id, ok := robotIDParam(w, r)
	if !ok {
		return
	}

	rec, err := s.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, robot.ErrRobotNotFound) {
			writeNotFound(w, "robot not found")
			return
		}
		s.logger.Error("getting robot failed", "robot_id", id, "error", err)
		writeInternalError(w, "failed to get robot")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// createRobotRequest is the enrollment body.
type createRobotRequest struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// handleCreateRobot enrolls a new robot.
func (s *Server) handleCreateRobot(w http.ResponseWriter, r *http.Request) {
	var req createRobotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	rec := &robot.Robot{ID: req.ID, Name: req.Name, Notes: req.Notes}
	if err := s.registry.Create(r.Context(), rec); err != nil {
		switch {
		case errors.Is(err, robot.ErrInvalidRobot):
			writeBadRequest(w, err.Error())
		case errors.Is(err, robot.ErrRobotExists):
			writeConflict(w, "robot already exists")
		default:
			s.logger.Error("creating robot failed", "robot_id", req.ID, "error", err)
			writeInternalError(w, "failed to create robot")
		}
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// updateRobotRequest carries the mutable robot fields.
type updateRobotRequest struct {
	Name  *string `json:"name,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// handleUpdateRobot patches an existing robot's metadata.
func (s *Server) handleUpdateRobot(w http.ResponseWriter, r *http.Request) {
	id, ok := robotIDParam(w, r)
	if !ok {
		return
	}

	var req updateRobotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	rec, err := s.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, robot.ErrRobotNotFound) {
			writeNotFound(w, "robot not found")
			return
		}
		s.logger.Error("getting robot failed", "robot_id", id, "error", err)
		writeInternalError(w, "failed to get robot")
		return
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	if err := s.registry.Update(r.Context(), rec); err != nil {
		switch {
		case errors.Is(err, robot.ErrInvalidRobot):
			writeBadRequest(w, err.Error())
		case errors.Is(err, robot.ErrRobotNotFound):
			writeNotFound(w, "robot not found")
		default:
			s.logger.Error("updating robot failed", "robot_id", id, "error", err)
			writeInternalError(w, "failed to update robot")
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteRobot removes a robot from the registry.
// Deletion never disables dispatch to the identifier.
func (s *Server) handleDeleteRobot(w http.ResponseWriter, r *http.Request) {
	id, ok := robotIDParam(w, r)
	if !ok {
		return
	}

	if err := s.registry.Delete(r.Context(), id); err != nil {
		if errors.Is(err, robot.ErrRobotNotFound) {
			writeNotFound(w, "robot not found")
			return
		}
		s.logger.Error("deleting robot failed", "robot_id", id, "error", err)
		writeInternalError(w, "failed to delete robot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// robotIDParam extracts and validates the {id} route parameter.
func robotIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeBadRequest(w, "robot id must be a positive integer")
		return 0, false
	}
	return id, true
}
