package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrNoScheduleFound  = errors.New("no schedule found for the given date and teams")
)
