package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

func TestRunStore_PutGet(t *testing.T) {
	store := NewRunStore(time.Hour)

	run := entities.NewRun("run-1")
	store.Put(run)

	got, ok := store.Get("run-1")
	if !ok {
		t.Fatalf("stored run not found")
	}
	if got.ID != "run-1" || got.Status != entities.RunStatusRunning {
		t.Fatalf("unexpected run state: %+v", got)
	}

	if _, ok := store.Get("ghost"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestRunStore_PutStoresSnapshot(t *testing.T) {
	store := NewRunStore(time.Hour)

	run := entities.NewRun("run-2")
	store.Put(run)

	// Mutations after Put must not leak into the stored state
	run.Audio = append(run.Audio, entities.AudioSegment{SegmentIndex: 0, SourceText: "A."})
	run.Fail(errors.New("later failure"))

	got, ok := store.Get("run-2")
	if !ok {
		t.Fatalf("stored run not found")
	}
	if got.Status != entities.RunStatusRunning {
		t.Fatalf("stored status = %s, want the state at Put time", got.Status)
	}
	if len(got.Audio) != 0 {
		t.Fatalf("stored run picked up later mutations: %+v", got.Audio)
	}

	store.Put(run)
	got, _ = store.Get("run-2")
	if got.Status != entities.RunStatusFailed || len(got.Audio) != 1 {
		t.Fatalf("re-Put must publish the new state, got %+v", got)
	}
}

func TestRunStore_Delete(t *testing.T) {
	store := NewRunStore(time.Hour)

	store.Put(entities.NewRun("run-3"))
	store.Delete("run-3")

	if _, ok := store.Get("run-3"); ok {
		t.Fatalf("deleted run must not resolve")
	}
}
