package hiring

import (
	"context"
	"errors"
	"strings"

	"talentflow/internal/store"
	"talentflow/internal/tenant"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

// AddNote appends a note to a candidate. The author is the staff member
// linked to the calling user; without one nothing is written.
func (s *Service) AddNote(ctx context.Context, candidateID string, req models.CreateNoteRequest) (*models.NoteDetail, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, utils.NewValidationError("content is required")
	}

	scope, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, translate(tenant.ErrNoScope)
	}
	if _, err := s.store.Candidates().Get(ctx, candidateID); err != nil {
		return nil, translate(err)
	}

	author, err := s.store.Staff().GetByUserID(ctx, scope.UserID)
	if errors.Is(err, store.ErrMissing) {
		return nil, utils.NewNotFoundError("No staff profile linked to caller").WithCause(err)
	}
	if err != nil {
		return nil, translate(err)
	}

	note := &models.Note{
		ID:          utils.NewID(),
		CandidateID: candidateID,
		AuthorID:    author.ID,
		Content:     req.Content,
		CreatedAt:   s.now(),
	}
	if err := s.store.Notes().Create(ctx, note); err != nil {
		return nil, translate(err)
	}

	s.log(ctx).Info("candidate note added", map[string]interface{}{"candidate_id": candidateID, "note_id": note.ID})
	return &models.NoteDetail{Note: *note, Author: author}, nil
}
