package webapp

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
)

type AnalysisStatus string

const (
	StatusSubmitted AnalysisStatus = "submitted"
	StatusExecuting AnalysisStatus = "executing"
	StatusCompleted AnalysisStatus = "completed"
	StatusError     AnalysisStatus = "error"
)

// Submission tracks one idea from the validation form through to its report.
type Submission struct {
	Token     string                       `json:"token"`
	UserID    string                       `json:"user_id,omitempty"`
	Idea      ideaanalysis.IdeaSubmission  `json:"idea"`
	Status    AnalysisStatus               `json:"status"`
	Report    *ideaanalysis.AnalysisReport `json:"report,omitempty"`
	IdeaID    string                       `json:"idea_id,omitempty"`
	Error     string                       `json:"error,omitempty"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

func (s *Submission) Ready() bool {
	return s.Status == StatusCompleted && s.Report != nil
}

func (s *Submission) pending() bool {
	return s.Status == StatusSubmitted || s.Status == StatusExecuting
}

type SubmissionStore struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
	now         func() time.Time
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		submissions: make(map[string]*Submission),
		now:         time.Now,
	}
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *SubmissionStore) Create(userID string, idea ideaanalysis.IdeaSubmission) Submission {
	now := s.now().UTC()
	sub := &Submission{
		Token:     generateToken(),
		UserID:    userID,
		Idea:      idea,
		Status:    StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.submissions[sub.Token] = sub
	s.mu.Unlock()
	return *sub
}

// Get returns a copy of the submission so callers never race the analysis job.
func (s *SubmissionStore) Get(token string) (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[token]
	if !ok {
		return Submission{}, false
	}
	return *sub, true
}

func (s *SubmissionStore) MarkExecuting(token string) bool {
	return s.update(token, func(sub *Submission) {
		sub.Status = StatusExecuting
	})
}

func (s *SubmissionStore) Complete(token string, report ideaanalysis.AnalysisReport, ideaID string) bool {
	return s.update(token, func(sub *Submission) {
		sub.Status = StatusCompleted
		sub.Report = &report
		sub.IdeaID = ideaID
		sub.Error = ""
	})
}

func (s *SubmissionStore) Fail(token, reason string) bool {
	return s.update(token, func(sub *Submission) {
		sub.Status = StatusError
		sub.Error = reason
	})
}

// FailPending marks every submitted or executing submission as errored and
// returns copies of the ones it touched.
func (s *SubmissionStore) FailPending(reason string) []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	var failed []Submission
	now := s.now().UTC()
	for _, sub := range s.submissions {
		if sub.pending() {
			sub.Status = StatusError
			sub.Error = reason
			sub.UpdatedAt = now
			failed = append(failed, *sub)
		}
	}
	return failed
}

func (s *SubmissionStore) update(token string, fn func(*Submission)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[token]
	if !ok {
		return false
	}
	fn(sub)
	sub.UpdatedAt = s.now().UTC()
	return true
}

// Snapshot copies all submissions for persistence.
func (s *SubmissionStore) Snapshot() map[string]*Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*Submission, len(s.submissions))
	for token, sub := range s.submissions {
		cp := *sub
		out[token] = &cp
	}
	return out
}

// Restore loads persisted submissions. Anything still pending was cut off by
// the previous shutdown and can never complete, so it is marked errored and
// returned to the caller.
func (s *SubmissionStore) Restore(subs map[string]*Submission) []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	var interrupted []Submission
	for token, sub := range subs {
		if sub == nil {
			continue
		}
		cp := *sub
		cp.Token = token
		if cp.pending() {
			cp.Status = StatusError
			cp.Error = "analysis interrupted by restart"
			interrupted = append(interrupted, cp)
		}
		s.submissions[token] = &cp
	}
	return interrupted
}
