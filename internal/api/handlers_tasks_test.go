package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/grimoire/internal/models"
)

func createTaskViaAPI(t *testing.T, env *testEnv, token string, body map[string]any) models.Task {
	t.Helper()

	response := env.do(t, http.MethodPost, "/api/tasks", token, body)
	expectStatus(t, response, http.StatusCreated)
	return decodeJSON[models.Task](t, response)
}

func listTaskKeys(t *testing.T, env *testEnv, token string, path string) []string {
	t.Helper()

	response := env.do(t, http.MethodGet, path, token, nil)
	expectStatus(t, response, http.StatusOK)
	tasks := decodeJSON[[]models.Task](t, response)
	keys := make([]string, 0, len(tasks))
	for _, task := range tasks {
		keys = append(keys, task.TaskKey)
	}
	return keys
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.createUser(t, "guardian@example.com"))

	task := createTaskViaAPI(t, env, token, map[string]any{
		"task_key": "water",
		"text":     "Drink water",
		"turn":     "morning",
	})
	if task.ID == 0 || task.MinPhase != 1 || task.MaxPhase != nil || task.SortOrder != 0 || !task.IsActive {
		t.Fatalf("unexpected defaults: %+v", task)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.createUser(t, "guardian@example.com"))

	createTaskViaAPI(t, env, token, map[string]any{"task_key": "water", "text": "Water", "turn": "morning"})

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing text", body: map[string]any{"task_key": "a", "turn": "day"}},
		{name: "unknown turn", body: map[string]any{"task_key": "a", "text": "A", "turn": "evening"}},
		{name: "inverted phases", body: map[string]any{"task_key": "a", "text": "A", "turn": "day", "min_phase": 3, "max_phase": 1}},
		{name: "duplicate key", body: map[string]any{"task_key": "water", "text": "Again", "turn": "night"}},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			response := env.do(t, http.MethodPost, "/api/tasks", token, testCase.body)
			expectStatus(t, response, http.StatusBadRequest)
			if readAPIError(t, response) == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestListTasksOrderingAndPhaseFilter(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.createUser(t, "guardian@example.com"))

	createTaskViaAPI(t, env, token, map[string]any{"task_key": "sleep", "text": "Sleep", "turn": "night"})
	createTaskViaAPI(t, env, token, map[string]any{"task_key": "walk", "text": "Walk", "turn": "afternoon", "min_phase": 2})
	createTaskViaAPI(t, env, token, map[string]any{"task_key": "stretch", "text": "Stretch", "turn": "morning", "sort_order": 2})
	createTaskViaAPI(t, env, token, map[string]any{"task_key": "water", "text": "Water", "turn": "morning", "sort_order": 1, "max_phase": 1})
	createTaskViaAPI(t, env, token, map[string]any{"task_key": "lunch", "text": "Lunch", "turn": "day"})

	want := []string{"water", "stretch", "lunch", "walk", "sleep"}
	if diff := cmp.Diff(want, listTaskKeys(t, env, token, "/api/tasks")); diff != "" {
		t.Fatalf("task order mismatch (-want +got):\n%s", diff)
	}

	wantPhaseOne := []string{"water", "stretch", "lunch", "sleep"}
	if diff := cmp.Diff(wantPhaseOne, listTaskKeys(t, env, token, "/api/tasks?phase=1")); diff != "" {
		t.Fatalf("phase 1 mismatch (-want +got):\n%s", diff)
	}

	wantPhaseTwo := []string{"stretch", "lunch", "walk", "sleep"}
	if diff := cmp.Diff(wantPhaseTwo, listTaskKeys(t, env, token, "/api/tasks?phase=month2")); diff != "" {
		t.Fatalf("phase 2 mismatch (-want +got):\n%s", diff)
	}

	response := env.do(t, http.MethodGet, "/api/tasks?phase=someday", token, nil)
	expectStatus(t, response, http.StatusBadRequest)
}

func TestUpdateTaskPatchesAndClearsMaxPhase(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.createUser(t, "guardian@example.com"))

	task := createTaskViaAPI(t, env, token, map[string]any{"task_key": "walk", "text": "Walk", "turn": "day", "max_phase": 2})
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	response := env.do(t, http.MethodPut, path, token, map[string]any{"text": "Walk 20 minutes"})
	expectStatus(t, response, http.StatusOK)
	updated := decodeJSON[models.Task](t, response)
	if updated.Text != "Walk 20 minutes" || updated.MaxPhase == nil || *updated.MaxPhase != 2 {
		t.Fatalf("expected only text to change, got %+v", updated)
	}

	response = env.do(t, http.MethodPut, path, token, map[string]any{"max_phase": nil})
	expectStatus(t, response, http.StatusOK)
	updated = decodeJSON[models.Task](t, response)
	if updated.MaxPhase != nil {
		t.Fatalf("expected max_phase cleared, got %d", *updated.MaxPhase)
	}

	response = env.do(t, http.MethodPut, "/api/tasks/abc", token, map[string]any{"text": "x"})
	expectStatus(t, response, http.StatusBadRequest)
}

func TestTasksAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.tokenFor(t, env.createUser(t, "owner@example.com"))
	otherToken := env.tokenFor(t, env.createUser(t, "other@example.com"))

	task := createTaskViaAPI(t, env, ownerToken, map[string]any{"task_key": "water", "text": "Water", "turn": "morning"})
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	if keys := listTaskKeys(t, env, otherToken, "/api/tasks/all"); len(keys) != 0 {
		t.Fatalf("expected other user to see no tasks, got %v", keys)
	}

	response := env.do(t, http.MethodPut, path, otherToken, map[string]any{"text": "mine now"})
	expectStatus(t, response, http.StatusNotFound)

	response = env.do(t, http.MethodDelete, path, otherToken, nil)
	expectStatus(t, response, http.StatusNotFound)

	createTaskViaAPI(t, env, otherToken, map[string]any{"task_key": "water", "text": "Water", "turn": "morning"})
}

func TestDeleteTaskIsSoft(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.createUser(t, "guardian@example.com"))

	task := createTaskViaAPI(t, env, token, map[string]any{"task_key": "water", "text": "Water", "turn": "morning"})

	response := env.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	expectStatus(t, response, http.StatusOK)
	if message := decodeJSON[map[string]string](t, response)["message"]; message != "Task deactivated" {
		t.Fatalf("unexpected delete message %q", message)
	}

	if keys := listTaskKeys(t, env, token, "/api/tasks"); len(keys) != 0 {
		t.Fatalf("expected no active tasks, got %v", keys)
	}
	if diff := cmp.Diff([]string{"water"}, listTaskKeys(t, env, token, "/api/tasks/all")); diff != "" {
		t.Fatalf("expected inactive task in full list (-want +got):\n%s", diff)
	}

	response = env.do(t, http.MethodDelete, "/api/tasks/9999", token, nil)
	expectStatus(t, response, http.StatusNotFound)
}
