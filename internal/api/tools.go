package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/nerrad567/quadbot-core/internal/robot"
)

// toolRequest is the robots_control invocation body.
//
// RobotID mirrors the tool-call contract: a single integer or an array of
// integers, defaulting to robot 1 when absent. It is kept raw here and
// normalized by the dispatcher.
type toolRequest struct {
	Action  string          `json:"action"`
	RobotID json.RawMessage `json:"robot_id,omitempty"`
	Params  map[string]any  `json:"params,omitempty"`
}

// handleToolInvoke executes a robots_control tool call.
//
// Response shapes follow the tool contract: a single-target call returns
// {"result": "<status>"}; a list-target call returns {"results": {"<id>":
// "<status>", ...}}.
func (s *Server) handleToolInvoke(w http.ResponseWriter, r *http.Request) {
	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	if req.Action == "" {
		writeBadRequest(w, "action is required")
		return
	}

	targets, single, err := decodeRobotID(req.RobotID)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	results, err := s.dispatcher.Dispatch(req.Action, targets, req.Params)
	switch {
	case err == nil:
	case errors.Is(err, robot.ErrUnknownAction):
		writeBadRequest(w, robot.StatusInvalidAction(req.Action))
		return
	case errors.Is(err, robot.ErrInvalidTarget):
		writeBadRequest(w, err.Error())
		return
	case errors.Is(err, robot.ErrConnectionUnavailable):
		writeUnavailable(w, robot.StatusNotConnected)
		return
	default:
		s.logger.Error("tool dispatch failed", "action", req.Action, "error", err)
		writeInternalError(w, "dispatch failed")
		return
	}

	if single {
		// Exactly one target by construction.
		for _, res := range results {
			writeJSON(w, http.StatusOK, map[string]any{"result": res.Status})
			return
		}
	}

	statuses := make(map[string]string, len(results))
	for id, res := range results {
		statuses[strconv.Itoa(id)] = res.Status
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": statuses})
}

// decodeRobotID interprets the raw robot_id field.
//
// Returns the value to hand to the dispatcher, whether the caller used the
// single-target form (which selects the single-status response shape), and
// an error for shapes the contract does not allow. An absent field defaults
// to robot 1.
func decodeRobotID(raw json.RawMessage) (any, bool, error) {
	if len(raw) == 0 {
		return 1, true, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, errors.New("robot_id must be an integer or an array of integers")
	}

	switch v.(type) {
	case float64:
		return v, true, nil
	case []any:
		return v, false, nil
	default:
		return nil, false, errors.New("robot_id must be an integer or an array of integers")
	}
}

// handleToolDescriptor returns the LLM function-calling descriptor for
// robots_control, built from the live action vocabulary.
func (s *Server) handleToolDescriptor(w http.ResponseWriter, _ *http.Request) {
	actions := robot.Actions()

	enum := make([]string, len(actions))
	var desc strings.Builder
	desc.WriteString("Quadruped robot action commands. Each entry maps a command to its behaviour; users may phrase requests in any language. ")
	for i, a := range actions {
		enum[i] = a.String()
		desc.WriteString(a.String())
		desc.WriteString(": ")
		desc.WriteString(a.Description())
		desc.WriteString("; ")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        "robots_control",
			"description": "Command a quadruped robot to perform an action",
			"parameters": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"action": map[string]any{
						"type":        "string",
						"enum":        enum,
						"description": desc.String(),
					},
					"robot_id": map[string]any{
						"type":        "integer",
						"default":     1,
						"description": "Robot identifier, defaults to 1. An array of identifiers commands several robots at once.",
					},
					"params": map[string]any{
						"type":        "object",
						"default":     map[string]any{},
						"description": "Action parameters (reserved)",
					},
				},
				"required": []string{"action"},
			},
		},
	})
}
