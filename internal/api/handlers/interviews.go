package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/hiring"
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// ListInterviewsHandler handles GET /interviews?candidateId=&jobId=&status=
func ListInterviewsHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		status, err := queryEnum(c, "status", models.InterviewStatus.IsValid)
		if err != nil {
			return err
		}

		interviews, err := svc.ListInterviews(c.Request().Context(), store.InterviewFilter{
			CandidateID: queryParam(c, "candidateId"),
			JobID:       queryParam(c, "jobId"),
			Status:      status,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, interviews)
	}
}

// CreateInterviewHandler handles POST /interviews
func CreateInterviewHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateInterviewRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		interview, err := svc.CreateInterview(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, interview)
	}
}

// UpdateInterviewHandler handles PUT /interviews/:id
func UpdateInterviewHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateInterviewRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		interview, err := svc.UpdateInterview(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, interview)
	}
}

// FeedbackHandler handles PATCH /interviews/:id/feedback
func FeedbackHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.FeedbackRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		interview, err := svc.AddFeedback(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, interview)
	}
}
