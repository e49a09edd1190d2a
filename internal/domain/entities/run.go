package entities

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus tracks the lifecycle of a pipeline run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run groups one request id with every intermediate artifact of a pipeline
// execution. It is transient state: kept in the run registry for
// observability, never persisted.
type Run struct {
	ID         string           `json:"request_id"`
	Status     RunStatus        `json:"status"`
	Script     *Script          `json:"script,omitempty"`
	Segments   []ScriptSegment  `json:"segments,omitempty"`
	Audio      []AudioSegment   `json:"audio,omitempty"`
	Assets     []Asset          `json:"assets,omitempty"`
	Transcript *TranscriptBatch `json:"transcript,omitempty"`
	Video      *VideoResult     `json:"video,omitempty"`
	Error      string           `json:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
}

// NewRun creates a running Run, generating an id when none is supplied
func NewRun(id string) *Run {
	if id == "" {
		id = uuid.New().String()
	}
	return &Run{
		ID:        id,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
}

// Complete marks the run as finished successfully
func (r *Run) Complete() {
	now := time.Now()
	r.Status = RunStatusCompleted
	r.FinishedAt = &now
}

// Fail marks the run as failed with a message
func (r *Run) Fail(err error) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.Error = err.Error()
	r.FinishedAt = &now
}

// Snapshot returns a copy that stays stable while the live run keeps
// mutating. Slice headers and nested pointers are duplicated; element
// data is shared because it is never modified once attached to a run.
func (r *Run) Snapshot() *Run {
	cp := *r
	if r.Script != nil {
		s := *r.Script
		cp.Script = &s
	}
	cp.Segments = append([]ScriptSegment(nil), r.Segments...)
	cp.Audio = append([]AudioSegment(nil), r.Audio...)
	cp.Assets = append([]Asset(nil), r.Assets...)
	if r.Transcript != nil {
		t := *r.Transcript
		t.Records = append([]TranscriptRecord(nil), r.Transcript.Records...)
		cp.Transcript = &t
	}
	if r.Video != nil {
		v := *r.Video
		cp.Video = &v
	}
	if r.FinishedAt != nil {
		f := *r.FinishedAt
		cp.FinishedAt = &f
	}
	return &cp
}
