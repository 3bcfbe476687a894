package dashboard

// Scope tags which variant of dashboard statistics a caller receives.
type Scope string

const (
	ScopeOrganization Scope = "organization"
	ScopeDepartment   Scope = "department"
	ScopePersonal     Scope = "personal"
)

// Stats is implemented by every dashboard variant.
type Stats interface {
	Scope() Scope
}

// OrganizationStats is shown to Super Admin and HR Admin.
type OrganizationStats struct {
	TotalEmployees      int64 `json:"totalEmployees"`
	ActiveEmployees     int64 `json:"activeEmployees"`
	TotalDepartments    int64 `json:"totalDepartments"`
	PendingLeaves       int64 `json:"pendingLeaves"`
	NewJoinersThisMonth int64 `json:"newJoinersThisMonth"`
}

func (OrganizationStats) Scope() Scope { return ScopeOrganization }

// DepartmentStats is shown to managers and covers their own department only.
type DepartmentStats struct {
	DepartmentName  string `json:"departmentName"`
	TotalEmployees  int64  `json:"totalEmployees"`
	ActiveEmployees int64  `json:"activeEmployees"`
	PendingLeaves   int64  `json:"pendingLeaves"`
}

func (DepartmentStats) Scope() Scope { return ScopeDepartment }

type PersonalStats struct {
	MyPendingLeaves         int64 `json:"myPendingLeaves"`
	MyTotalLeaves           int64 `json:"myTotalLeaves"`
	MyApprovedLeaves        int64 `json:"myApprovedLeaves"`
	AttendanceDaysThisMonth int64 `json:"attendanceDaysThisMonth"`
}

func (PersonalStats) Scope() Scope { return ScopePersonal }
