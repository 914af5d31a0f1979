package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/grimoire/internal/models"
)

func boolPointer(value bool) *bool {
	return &value
}

func newCheckFixture(t *testing.T) (*CheckService, *checkRepositoryStub, models.Task) {
	t.Helper()

	tasks := newTaskRepositoryStub()
	task, err := NewTaskService(tasks).Create(1, TaskCreateInput{TaskKey: "water", Text: "Water", Turn: "morning"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	checks := newCheckRepositoryStub()
	return NewCheckService(checks, tasks), checks, task
}

func TestToggleCreatesCompletedThenFlips(t *testing.T) {
	service, checks, task := newCheckFixture(t)

	first, created, err := service.Toggle(1, task.ID, "2024-03-14", nil)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !created || !first.IsCompleted {
		t.Fatalf("expected created completed row, got created=%v completed=%v", created, first.IsCompleted)
	}

	second, created, err := service.Toggle(1, task.ID, "2024-03-14", nil)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if created || second.IsCompleted {
		t.Fatalf("expected updated incomplete row, got created=%v completed=%v", created, second.IsCompleted)
	}
	if second.ID != first.ID || len(checks.checks) != 1 {
		t.Fatalf("expected single row per task and day, got %d rows", len(checks.checks))
	}
}

func TestToggleExplicitValueIsIdempotent(t *testing.T) {
	service, _, task := newCheckFixture(t)

	for attempt := 0; attempt < 2; attempt++ {
		check, _, err := service.Toggle(1, task.ID, "2024-03-14", boolPointer(false))
		if err != nil {
			t.Fatalf("toggle attempt %d: %v", attempt, err)
		}
		if check.IsCompleted {
			t.Fatalf("attempt %d: expected explicit false to stick", attempt)
		}
	}
}

func TestToggleValidation(t *testing.T) {
	service, _, task := newCheckFixture(t)

	if _, _, err := service.Toggle(1, 0, "2024-03-14", nil); !errors.Is(err, ErrCheckFieldsRequired) {
		t.Fatalf("expected ErrCheckFieldsRequired, got %v", err)
	}
	if _, _, err := service.Toggle(1, task.ID, "14/03/2024", nil); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, _, err := service.Toggle(2, task.ID, "2024-03-14", nil); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
}

func TestToggleStorageFailure(t *testing.T) {
	service, checks, task := newCheckFixture(t)
	checks.toggleErr = errors.New("disk full")

	if _, _, err := service.Toggle(1, task.ID, "2024-03-14", nil); !errors.Is(err, ErrCheckSaveFailed) {
		t.Fatalf("expected ErrCheckSaveFailed, got %v", err)
	}
}

func TestListForDateScopesByDay(t *testing.T) {
	service, _, task := newCheckFixture(t)

	if _, _, err := service.Toggle(1, task.ID, "2024-03-14", nil); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, _, err := service.Toggle(1, task.ID, "2024-03-15", nil); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	checks, err := service.ListForDate(1, "2024-03-14")
	if err != nil {
		t.Fatalf("list for date: %v", err)
	}
	if len(checks) != 1 || checks[0].CheckDate != "2024-03-14" {
		t.Fatalf("expected one check on 2024-03-14, got %+v", checks)
	}
	if _, err := service.ListForDate(1, "yesterday"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
