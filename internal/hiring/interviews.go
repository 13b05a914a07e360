package hiring

import (
	"context"
	"strings"

	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

func (s *Service) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]models.Interview, error) {
	interviews, err := s.store.Interviews().List(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}
	return interviews, nil
}

// CreateInterview schedules an interview. Candidate, job and interviewer must
// all belong to the caller's organization.
func (s *Service) CreateInterview(ctx context.Context, req models.CreateInterviewRequest) (*models.Interview, error) {
	if req.Duration <= 0 {
		return nil, utils.NewValidationError("duration must be positive")
	}
	if !req.Type.IsValid() {
		return nil, utils.NewValidationError("unknown interview type " + string(req.Type))
	}
	if req.ScheduledAt.IsZero() {
		return nil, utils.NewValidationError("scheduledAt is required")
	}

	if _, err := s.store.Candidates().Get(ctx, req.CandidateID); err != nil {
		return nil, translate(err)
	}
	if _, err := s.store.Jobs().Get(ctx, req.JobID); err != nil {
		return nil, translate(err)
	}
	if _, err := s.store.Staff().Get(ctx, req.InterviewerID); err != nil {
		return nil, translate(err)
	}

	now := s.now()
	interview := &models.Interview{
		ID:            utils.NewID(),
		CandidateID:   req.CandidateID,
		JobID:         req.JobID,
		InterviewerID: req.InterviewerID,
		ScheduledAt:   req.ScheduledAt.UTC(),
		Duration:      req.Duration,
		Type:          req.Type,
		Status:        models.InterviewScheduled,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Interviews().Create(ctx, interview); err != nil {
		return nil, translate(err)
	}

	s.log(ctx).Info("interview scheduled", map[string]interface{}{
		"interview_id": interview.ID,
		"candidate_id": interview.CandidateID,
		"scheduled_at": interview.ScheduledAt,
	})
	return interview, nil
}

func (s *Service) UpdateInterview(ctx context.Context, id string, req models.UpdateInterviewRequest) (*models.Interview, error) {
	interview, err := s.store.Interviews().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if req.InterviewerID != nil {
		if _, err := s.store.Staff().Get(ctx, *req.InterviewerID); err != nil {
			return nil, translate(err)
		}
		interview.InterviewerID = *req.InterviewerID
	}
	if req.ScheduledAt != nil {
		interview.ScheduledAt = req.ScheduledAt.UTC()
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, utils.NewValidationError("duration must be positive")
		}
		interview.Duration = *req.Duration
	}
	if req.Type != nil {
		interview.Type = *req.Type
	}
	if req.Status != nil {
		interview.Status = *req.Status
	}
	if req.Location != nil {
		interview.Location = req.Location
	}
	if req.MeetingLink != nil {
		interview.MeetingLink = req.MeetingLink
	}
	interview.UpdatedAt = s.now()

	if err := s.store.Interviews().Update(ctx, interview); err != nil {
		return nil, translate(err)
	}
	return interview, nil
}

// AddFeedback records the interviewer's feedback and marks the interview COMPLETED,
// whatever its previous status was.
func (s *Service) AddFeedback(ctx context.Context, id string, req models.FeedbackRequest) (*models.Interview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, utils.NewValidationError("feedback is required")
	}

	interview, err := s.store.Interviews().Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	previous := interview.Status

	interview.Feedback = utils.Ptr(req.Feedback)
	interview.Rating = utils.Ptr(req.Rating)
	interview.Status = models.InterviewCompleted
	interview.UpdatedAt = s.now()

	if err := s.store.Interviews().Update(ctx, interview); err != nil {
		return nil, translate(err)
	}

	s.log(ctx).Info("interview feedback recorded", map[string]interface{}{
		"interview_id": interview.ID,
		"from":         string(previous),
		"rating":       req.Rating,
	})
	return interview, nil
}
