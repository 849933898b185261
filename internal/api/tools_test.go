package api

import (
	"net/http"
	"testing"

	"github.com/nerrad567/quadbot-core/internal/robot"
)

func TestToolInvokeSingleTarget(t *testing.T) {
	srv, dispatcher, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"action": "forward", "robot_id": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["result"] != "SUCCESS:forward command executed" {
		t.Errorf("result = %v", body["result"])
	}

	if len(dispatcher.calls) != 1 {
		t.Fatalf("dispatcher called %d times, want 1", len(dispatcher.calls))
	}
	if dispatcher.calls[0].action != "forward" {
		t.Errorf("dispatched action = %q", dispatcher.calls[0].action)
	}
}

func TestToolInvokeDefaultRobotID(t *testing.T) {
	srv, dispatcher, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"action": "dance"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["result"] != "SUCCESS:dance command executed" {
		t.Errorf("result = %v", body["result"])
	}

	// Absent robot_id defaults to robot 1.
	ids, err := robot.NormalizeTargets(dispatcher.calls[0].targets)
	if err != nil || len(ids) != 1 || ids[0] != 1 {
		t.Errorf("dispatched targets = %v (err %v), want [1]", ids, err)
	}
}

func TestToolInvokeMultipleTargets(t *testing.T) {
	srv, dispatcher, _ := testServer(t)
	dispatcher.failIDs = map[int]bool{2: true}

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"action": "hello", "robot_id": [1, 2, 3]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	results, ok := body["results"].(map[string]any)
	if !ok {
		t.Fatalf("results missing from body: %v", body)
	}
	if results["1"] != "SUCCESS:hello command executed" {
		t.Errorf("results[1] = %v", results["1"])
	}
	if results["2"] != "ERROR:hello command failed" {
		t.Errorf("results[2] = %v", results["2"])
	}
	if results["3"] != "SUCCESS:hello command executed" {
		t.Errorf("results[3] = %v", results["3"])
	}
}

func TestToolInvokeEmptyTargetList(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"action": "forward", "robot_id": []}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	results, ok := body["results"].(map[string]any)
	if !ok {
		t.Fatalf("results missing from body: %v", body)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

func TestToolInvokeUnknownAction(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"action": "fly", "robot_id": 1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["message"] != "ERROR:invalid action fly" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestToolInvokeMissingAction(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"robot_id": 1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestToolInvokeBadRobotID(t *testing.T) {
	srv, _, _ := testServer(t)

	for _, body := range []string{
		`{"action": "forward", "robot_id": "one"}`,
		`{"action": "forward", "robot_id": {"id": 1}}`,
		`{"action": "forward", "robot_id": 1.5}`,
		`{"action": "forward", "robot_id": -1}`,
		`{"action": "forward", "robot_id": [1, "two"]}`,
	} {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestToolInvokeConnectionUnavailable(t *testing.T) {
	srv, dispatcher, _ := testServer(t)
	dispatcher.err = robot.ErrConnectionUnavailable

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/",
		`{"action": "forward", "robot_id": 1}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["message"] != "ERROR:MQTT not connected" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestToolInvokeInvalidJSON(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/tools/robots_control/", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestToolDescriptor(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/tools/robots_control/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["type"] != "function" {
		t.Errorf("type = %v, want function", body["type"])
	}

	fn, ok := body["function"].(map[string]any)
	if !ok {
		t.Fatalf("function missing from descriptor: %v", body)
	}
	if fn["name"] != "robots_control" {
		t.Errorf("function name = %v", fn["name"])
	}

	params := fn["parameters"].(map[string]any)
	props := params["properties"].(map[string]any)
	action := props["action"].(map[string]any)
	enum, ok := action["enum"].([]any)
	if !ok || len(enum) != 14 {
		t.Errorf("action enum = %v, want 14 entries", action["enum"])
	}
}
