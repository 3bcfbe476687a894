package attendance

import "time"

type Status string

const (
	StatusPresent Status = "Present"
	StatusHalfDay Status = "Half Day"
	StatusAbsent  Status = "Absent"
	StatusOnLeave Status = "On Leave"
)

// DayState is where a user stands in today's punch cycle.
type DayState string

const (
	StateNotPunchedIn DayState = "not_punched_in"
	StatePunchedIn    DayState = "punched_in"
	StatePunchedOut   DayState = "punched_out"
)

type UserInfo struct {
	ID             string
	Name           string
	Email          string
	RoleName       string
	DepartmentName string
}

type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time
	PunchIn    time.Time
	PunchOut   *time.Time
	ScrumNote  string
	WorkReport string
	Duration   int
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	User *UserInfo
}

func (a Attendance) State() DayState {
	if a.PunchOut != nil {
		return StatePunchedOut
	}
	return StatePunchedIn
}

// DurationMinutes is the wall-clock span rounded to the nearest minute.
func DurationMinutes(in, out time.Time) int {
	return int(out.Sub(in).Round(time.Minute) / time.Minute)
}

// DayOf normalises t to midnight of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
