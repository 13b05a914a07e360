package validation

import (
	"github.com/go-playground/validator/v10"

	"talentflow/pkg/models"
)

// RegisterHiringValidators registers the enumeration validators used by request models
func RegisterHiringValidators(v *validator.Validate) {
	v.RegisterValidation("job_type", ValidateJobType)
	v.RegisterValidation("experience_level", ValidateExperienceLevel)
	v.RegisterValidation("job_status", ValidateJobStatus)
	v.RegisterValidation("source", ValidateSource)
	v.RegisterValidation("stage", ValidateStage)
	v.RegisterValidation("interview_type", ValidateInterviewType)
	v.RegisterValidation("interview_status", ValidateInterviewStatus)
}

func ValidateJobType(fl validator.FieldLevel) bool {
	return models.JobType(fl.Field().String()).IsValid()
}

func ValidateExperienceLevel(fl validator.FieldLevel) bool {
	return models.ExperienceLevel(fl.Field().String()).IsValid()
}

func ValidateJobStatus(fl validator.FieldLevel) bool {
	return models.JobStatus(fl.Field().String()).IsValid()
}

func ValidateSource(fl validator.FieldLevel) bool {
	return models.Source(fl.Field().String()).IsValid()
}

// ValidateStage accepts stage names in any letter case
func ValidateStage(fl validator.FieldLevel) bool {
	_, err := models.ParseStage(fl.Field().String())
	return err == nil
}

func ValidateInterviewType(fl validator.FieldLevel) bool {
	return models.InterviewType(fl.Field().String()).IsValid()
}

func ValidateInterviewStatus(fl validator.FieldLevel) bool {
	return models.InterviewStatus(fl.Field().String()).IsValid()
}
