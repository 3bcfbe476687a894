package attendance

import "errors"

var (
	ErrScrumNoteRequired  = errors.New("scrum note is required for punch in")
	ErrWorkReportRequired = errors.New("work report is required for punch out")
	ErrAlreadyPunchedIn   = errors.New("you have already punched in for today")
	ErrNoPunchInToday     = errors.New("no punch-in record found for today")
	ErrAlreadyPunchedOut  = errors.New("you have already punched out for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
