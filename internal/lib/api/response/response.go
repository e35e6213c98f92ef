package response

import (
	"github.com/go-playground/validator/v10"
)

type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(message string) Response {
	return Response{Message: message}
}

func Error(msg string) Response {
	return Response{Error: msg}
}

// ValidationError collapses validator failures into the user-facing message.
// Absent required fields all share one message; a present-but-malformed email
// gets its own.
func ValidationError(errs validator.ValidationErrors) Response {
	for _, err := range errs {
		if err.ActualTag() == "email" {
			return Error("Please enter a valid email")
		}
	}

	return Error("Please enter all fields")
}
