package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/hiring"
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// ListJobsHandler handles GET /jobs?status=&departmentId=
func ListJobsHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		status, err := queryEnum(c, "status", models.JobStatus.IsValid)
		if err != nil {
			return err
		}

		jobs, err := svc.ListJobs(c.Request().Context(), store.JobFilter{
			Status:       status,
			DepartmentID: queryParam(c, "departmentId"),
		})
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, jobs)
	}
}

// GetJobHandler handles GET /jobs/:id
func GetJobHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := svc.GetJob(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, job)
	}
}

// CreateJobHandler handles POST /jobs
func CreateJobHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateJobRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		job, err := svc.CreateJob(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, job)
	}
}

// UpdateJobHandler handles PUT /jobs/:id
func UpdateJobHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateJobRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		job, err := svc.UpdateJob(c.Request().Context(), c.Param("id"), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, job)
	}
}

// DeleteJobHandler handles DELETE /jobs/:id
func DeleteJobHandler(svc *hiring.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteJob(c.Request().Context(), c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, models.MessageResponse{Message: "Job deleted successfully"})
	}
}
