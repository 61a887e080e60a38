package service

import (
	"fmt"
	"time"
	"unicode"

	"confbooker/internal/domain"
)

const (
	maxUserTopics       = 50
	maxConferenceTopics = 10
	maxConferenceSpan   = 12 * time.Hour
)

func validateUserInput(input domain.RegisterUserInput) error {
	if input.ID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if !isAlphanumeric(input.ID) {
		return fmt.Errorf("%w: user id must be alphanumeric", domain.ErrValidation)
	}
	if len(input.Topics) > maxUserTopics {
		return fmt.Errorf("%w: at most %d interested topics allowed", domain.ErrValidation, maxUserTopics)
	}
	for _, topic := range input.Topics {
		if !isAlphanumericWithSpaces(topic) {
			return fmt.Errorf("%w: topic %q must be alphanumeric", domain.ErrValidation, topic)
		}
	}
	return nil
}

func validateConferenceInput(input domain.RegisterConferenceInput) error {
	if input.Name == "" || !isAlphanumericWithSpaces(input.Name) {
		return fmt.Errorf("%w: conference name must be alphanumeric", domain.ErrValidation)
	}
	if input.Location == "" || !isAlphanumericWithSpaces(input.Location) {
		return fmt.Errorf("%w: location must be alphanumeric", domain.ErrValidation)
	}
	if len(input.Topics) > maxConferenceTopics {
		return fmt.Errorf("%w: at most %d topics allowed", domain.ErrValidation, maxConferenceTopics)
	}
	for _, topic := range input.Topics {
		if !isAlphanumericWithSpaces(topic) {
			return fmt.Errorf("%w: topic %q must be alphanumeric", domain.ErrValidation, topic)
		}
	}
	if !input.StartTime.Before(input.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", domain.ErrValidation)
	}
	if input.EndTime.Sub(input.StartTime) > maxConferenceSpan {
		return fmt.Errorf("%w: conference duration must not exceed %s", domain.ErrValidation, maxConferenceSpan)
	}
	if input.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func isAlphanumericWithSpaces(s string) bool {
	seen := false
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		seen = true
	}
	return seen
}
