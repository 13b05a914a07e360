package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/hiring"
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// ListCandidatesHandler handles GET /candidates?jobId=&source=
func ListCandidatesHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		source, err := queryEnum(c, "source", models.Source.IsValid)
		if err != nil {
			return err
		}

		candidates, err := svc.ListCandidates(c.Request().Context(), store.CandidateFilter{
			Source: source,
			JobID:  queryParam(c, "jobId"),
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, candidates)
	}
}

// GetCandidateHandler handles GET /candidates/:id
func GetCandidateHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		candidate, err := svc.GetCandidate(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, candidate)
	}
}

// CreateCandidateHandler handles POST /candidates
func CreateCandidateHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateCandidateRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		candidate, err := svc.CreateCandidate(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, candidate)
	}
}

// UpdateCandidateHandler handles PUT /candidates/:id
func UpdateCandidateHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateCandidateRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		candidate, err := svc.UpdateCandidate(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, candidate)
	}
}

// DeleteCandidateHandler handles DELETE /candidates/:id
func DeleteCandidateHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteCandidate(c.Request().Context(), c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, models.MessageResponse{Message: "Candidate deleted successfully"})
	}
}

// AddNoteHandler handles POST /candidates/:id/notes
func AddNoteHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateNoteRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		note, err := svc.AddNote(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, note)
	}
}
