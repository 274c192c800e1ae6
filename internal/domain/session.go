package domain

import (
	"time"

	"resume-chatbot/internal/model"

	"github.com/google/uuid"
)

// SessionState is everything one user's conversation owns: the current step
// and the record built so far.
type SessionState struct {
	ID        uuid.UUID     `json:"id"`
	Step      Step          `json:"step"`
	Record    *model.Record `json:"record"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewSessionState() *SessionState {
	now := time.Now()
	return &SessionState{
		ID:        uuid.New(),
		Step:      StepName,
		Record:    model.NewRecord(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy that shares no memory with s.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	out := *s
	out.Record = s.Record.Clone()
	return &out
}

// Reset puts the session back at the first step with an empty record,
// keeping its identity.
func (s *SessionState) Reset() {
	s.Step = StepName
	s.Record = model.NewRecord()
	s.UpdatedAt = time.Now()
}

func (s *SessionState) Done() bool { return s.Step == StepDone }
