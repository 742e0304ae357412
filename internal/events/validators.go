package events

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// "HH:MM AM - HH:MM PM"
	timeWindowRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9] (AM|PM) - ([0-1]?[0-9]|2[0-3]):[0-5][0-9] (AM|PM)$`)

	// Comma-separated words without spaces, numbers, or special characters
	tagListRegex = regexp.MustCompile(`^[a-zA-Z]+(?:,[a-zA-Z]+)*$`)
)

// RegisterValidators installs the event-specific binding validators on
// gin's validator engine. Call once at startup, before routes are served.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("event_time_window", validateTimeWindow); err != nil {
		return err
	}
	return v.RegisterValidation("event_tags", validateTagList)
}

func validateTimeWindow(fl validator.FieldLevel) bool {
	return timeWindowRegex.MatchString(fl.Field().String())
}

func validateTagList(fl validator.FieldLevel) bool {
	return tagListRegex.MatchString(fl.Field().String())
}
