package webapp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/1234bibhash/venture-idea-compass/internal/ideaanalysis"
	"github.com/1234bibhash/venture-idea-compass/internal/store"
	"github.com/1234bibhash/venture-idea-compass/internal/telemetry"
)

// startAnalysis registers the submission and schedules its analysis job.
func (s *Server) startAnalysis(user string, idea ideaanalysis.IdeaSubmission) (Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Submission{}, errUnavailable("server is shutting down")
	}
	sub := s.subs.Create(user, idea)
	s.jobs.Add(1)
	go s.runAnalysis(sub.Token, user, idea)
	return sub, nil
}

// runAnalysis holds the submission in executing for the configured delay,
// then synthesizes the report and archives it. The user's quota slot was
// taken when the submission was accepted.
func (s *Server) runAnalysis(token, user string, idea ideaanalysis.IdeaSubmission) {
	defer s.jobs.Done()
	log := s.log.WithFields(logrus.Fields{"token": token, "user": user})
	s.subs.MarkExecuting(token)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
			s.subs.Fail(token, "analysis cancelled: server shutting down")
			s.releaseSlots(context.WithoutCancel(s.ctx), []Submission{{UserID: user}})
			log.Warn("analysis cancelled")
			return
		case <-timer.C:
		}
	}

	// Archiving must finish even when shutdown starts mid-write.
	ctx := context.WithoutCancel(s.ctx)
	ctx, span := telemetry.Tracer().Start(ctx, "ideaanalysis.synthesize")
	defer span.End()

	report := s.synth.Synthesize(idea)
	span.SetAttributes(
		attribute.String("report.template", string(report.Template)),
		attribute.Int("report.score", report.Score),
	)

	rec := store.IdeaRecord{
		ID:        uuid.NewString(),
		UserID:    user,
		Title:     report.Title,
		Industry:  report.Industry,
		Template:  report.Template,
		Score:     report.Score,
		Report:    report,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.SaveIdea(ctx, rec); err != nil {
		span.RecordError(err)
		log.WithError(err).Error("archive idea")
		rec.ID = ""
	}

	s.subs.Complete(token, report, rec.ID)
	log.WithFields(logrus.Fields{"template": report.Template, "score": report.Score}).Info("analysis completed")
}

// releaseSlots refunds the quota slot of every submission that will never
// produce a report.
func (s *Server) releaseSlots(ctx context.Context, subs []Submission) {
	for _, sub := range subs {
		if sub.UserID == "" {
			continue
		}
		if err := s.tracker.Release(ctx, sub.UserID); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"token": sub.Token, "user": sub.UserID}).Error("release idea slot")
		}
	}
}
