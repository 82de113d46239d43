package ledger

import (
	"slices"
	"sync"
)

// state is the in-memory view shared by both stores. Changes go through
// update, which persists before touching memory.
type state struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	current Progress
}

func (s *state) reset(p Progress) {
	completed := dedupe(p.Completed)
	failed := []string{}
	for _, id := range dedupe(p.Failed) {
		if !slices.Contains(completed, id) {
			failed = append(failed, id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Progress{Completed: completed, Failed: failed}
}

// update applies change to a copy of the progress, hands the result to
// persist and adopts it only when persist succeeds. A no-op change skips
// persist.
func (s *state) update(change func(Progress) (Progress, bool), persist func(Progress) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, changed := change(s.Snapshot())
	if !changed {
		return nil
	}
	if err := persist(next); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	return nil
}

func (s *state) IsCompleted(caseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.current.Completed, caseID)
}

func (s *state) Snapshot() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Progress{
		Completed: append([]string{}, s.current.Completed...),
		Failed:    append([]string{}, s.current.Failed...),
	}
}

// withCompleted moves caseID to completed.
func withCompleted(caseID string) func(Progress) (Progress, bool) {
	return func(p Progress) (Progress, bool) {
		if slices.Contains(p.Completed, caseID) {
			return p, false
		}
		p.Completed = append(p.Completed, caseID)
		p.Failed = slices.DeleteFunc(p.Failed, func(id string) bool { return id == caseID })
		return p, true
	}
}

// withFailed adds caseID to failed unless it already completed.
func withFailed(caseID string) func(Progress) (Progress, bool) {
	return func(p Progress) (Progress, bool) {
		if slices.Contains(p.Completed, caseID) || slices.Contains(p.Failed, caseID) {
			return p, false
		}
		p.Failed = append(p.Failed, caseID)
		return p, true
	}
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
