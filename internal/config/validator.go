package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	doctorerrors "github.com/alexisbeaulieu97/envdoctor/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	depIDPattern  = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("dep_id", func(fl validator.FieldLevel) bool {
			return depIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("semver_range", func(fl validator.FieldLevel) bool {
			_, err := semver.NewConstraint(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return doctorerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			field := strings.ToLower(first.Namespace())
			return doctorerrors.NewValidationError(field, describeFieldError(first), err)
		}
		return doctorerrors.NewValidationError("config", err.Error(), err)
	}

	seen := make(map[string]struct{}, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		if _, dup := seen[dep.ID]; dup {
			return doctorerrors.NewValidationError(
				fmt.Sprintf("dependencies.%s", dep.ID),
				"duplicate dependency id",
				nil,
			)
		}
		seen[dep.ID] = struct{}{}
	}

	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = fieldErrs
	return true
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "semver":
		return "must be a semantic version (e.g. 1.0.0)"
	case "semver_range":
		return "must be a valid semver range (e.g. ^18.17.0)"
	case "dep_id":
		return "must contain only lowercase letters, digits, hyphens, and underscores"
	case "min", "max":
		return fmt.Sprintf("length must satisfy %s=%s", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
