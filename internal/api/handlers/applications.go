package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/hiring"
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// ListApplicationsHandler handles GET /applications?jobId=&candidateId=&stage=
func ListApplicationsHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		stage, err := queryEnum(c, "stage", models.Stage.IsValid)
		if err != nil {
			return err
		}

		apps, err := svc.ListApplications(c.Request().Context(), store.ApplicationFilter{
			JobID:       queryParam(c, "jobId"),
			CandidateID: queryParam(c, "candidateId"),
			Stage:       stage,
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, apps)
	}
}

// GetApplicationHandler handles GET /applications/:id
func GetApplicationHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		app, err := svc.GetApplication(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, app)
	}
}

// CreateApplicationHandler handles POST /applications
func CreateApplicationHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateApplicationRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		app, err := svc.CreateApplication(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, app)
	}
}

// AdvanceStageHandler handles PATCH /applications/:id/stage
func AdvanceStageHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.AdvanceStageRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		app, err := svc.AdvanceStage(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, app)
	}
}
