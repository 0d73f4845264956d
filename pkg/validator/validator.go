package validator

import (
	"net/mail"
	"strings"

	"github.com/vedran77/taskdeck/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(name, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) < 2 {
		errs.Add("name", "Name must be at least 2 characters")
	} else if len(name) > 100 {
		errs.Add("name", "Name is too long")
	}

	validateEmail(email, errs)

	if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	} else if len(password) > 128 {
		errs.Add("password", "Password is too long")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateProfile(name string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) < 2 {
		errs.Add("name", "Name must be at least 2 characters")
	} else if len(name) > 100 {
		errs.Add("name", "Name is too long")
	}

	return errs
}

func ValidateTask(title, status, priority string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	} else if len(title) > 200 {
		errs.Add("title", "Title is too long")
	}

	if status != "" && !domain.ValidStatus(status) {
		errs.Add("status", "Status must be todo, in-progress, or completed")
	}

	if priority != "" && !domain.ValidPriority(priority) {
		errs.Add("priority", "Priority must be low, medium, or high")
	}

	return errs
}

// ValidateTaskPatch checks only the fields the patch actually carries.
func ValidateTaskPatch(patch domain.TaskPatch) ValidationErrors {
	errs := make(ValidationErrors)

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			errs.Add("title", "Title cannot be empty")
		} else if len(*patch.Title) > 200 {
			errs.Add("title", "Title is too long")
		}
	}

	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		errs.Add("status", "Status must be todo, in-progress, or completed")
	}

	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		errs.Add("priority", "Priority must be low, medium, or high")
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}
