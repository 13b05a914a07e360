package hiring_test

import (
	"errors"
	"testing"
	"time"

	"talentflow/internal/hiring"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

func TestApplyStage(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)
	t2 := t1.Add(24 * time.Hour)

	type when struct {
		app    models.Application
		next   models.Stage
		reason *string
		at     time.Time
	}
	type then struct {
		app models.Application
		err error
	}

	for name, testcase := range map[string]struct {
		when
		then
	}{
		"any stage may jump to any non-terminal stage": {
			when: when{
				app:  models.Application{Stage: models.StageApplied},
				next: models.StageOffer, at: t1,
			},
			then: then{app: models.Application{Stage: models.StageOffer, UpdatedAt: t1}},
		},
		"entering HIRED stamps hiredAt": {
			when: when{
				app:  models.Application{Stage: models.StageOffer},
				next: models.StageHired, at: t1,
			},
			then: then{app: models.Application{Stage: models.StageHired, HiredAt: &t1, UpdatedAt: t1}},
		},
		"entering HIRED again keeps the first hiredAt": {
			when: when{
				app:  models.Application{Stage: models.StageHired, HiredAt: &t0},
				next: models.StageHired, at: t2,
			},
			then: then{app: models.Application{Stage: models.StageHired, HiredAt: &t0, UpdatedAt: t2}},
		},
		"walking back from HIRED keeps hiredAt": {
			when: when{
				app:  models.Application{Stage: models.StageHired, HiredAt: &t0},
				next: models.StageOffer, at: t1,
			},
			then: then{app: models.Application{Stage: models.StageOffer, HiredAt: &t0, UpdatedAt: t1}},
		},
		"entering REJECTED stamps rejectedAt and the reason": {
			when: when{
				app:  models.Application{Stage: models.StageApplied},
				next: models.StageRejected, reason: utils.Ptr("Not a fit"), at: t1,
			},
			then: then{app: models.Application{
				Stage: models.StageRejected, RejectedAt: &t1, RejectionReason: utils.Ptr("Not a fit"), UpdatedAt: t1,
			}},
		},
		"entering REJECTED again keeps rejectedAt and replaces the reason": {
			when: when{
				app:  models.Application{Stage: models.StageScreening, RejectedAt: &t0, RejectionReason: utils.Ptr("old")},
				next: models.StageRejected, reason: utils.Ptr("new"), at: t2,
			},
			then: then{app: models.Application{
				Stage: models.StageRejected, RejectedAt: &t0, RejectionReason: utils.Ptr("new"), UpdatedAt: t2,
			}},
		},
		"a hired application cannot be rejected": {
			when: when{
				app:  models.Application{Stage: models.StageOffer, HiredAt: &t0},
				next: models.StageRejected, at: t1,
			},
			then: then{err: hiring.ErrAlreadyHired},
		},
		"a rejected application cannot be hired": {
			when: when{
				app:  models.Application{Stage: models.StageInterview, RejectedAt: &t0},
				next: models.StageHired, at: t1,
			},
			then: then{err: hiring.ErrAlreadyRejected},
		},
		"withdrawing touches no timestamp": {
			when: when{
				app:  models.Application{Stage: models.StageInterview},
				next: models.StageWithdrawn, at: t1,
			},
			then: then{app: models.Application{Stage: models.StageWithdrawn, UpdatedAt: t1}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := hiring.ApplyStage(testcase.when.app, testcase.when.next, testcase.when.reason, testcase.when.at)
			if testcase.then.err != nil {
				if !errors.Is(err, testcase.then.err) {
					t.Fatalf("got error %v, want %v", err, testcase.then.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sameApplication(got, testcase.then.app) {
				t.Errorf("got %+v, want %+v", got, testcase.then.app)
			}
		})
	}
}

func sameApplication(a, b models.Application) bool {
	return a.Stage == b.Stage &&
		a.UpdatedAt.Equal(b.UpdatedAt) &&
		sameTime(a.HiredAt, b.HiredAt) &&
		sameTime(a.RejectedAt, b.RejectedAt) &&
		sameString(a.RejectionReason, b.RejectionReason)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
