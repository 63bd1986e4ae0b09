package sdk

import "time"

// Identity is the employee record of a user as returned by the employee endpoints.
// Role holds the human-readable role name, not an id.
type Identity struct {
	EmployeeID  string `json:"employeeId"`
	Username    string `json:"username"`
	Gender      string `json:"gender,omitempty"`
	Age         int    `json:"age,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty"`
	Department  int64  `json:"department"`
	Position    int64  `json:"position"`
	Role        string `json:"role"`
}

// Permission is a named capability. Name is the key permission checks use.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Role groups permissions under a name.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	IsSystem    bool         `json:"isSystem"`
	Permissions []Permission `json:"permissions"`
}

// RoleCatalog is every role and permission known to the server.
type RoleCatalog struct {
	Roles       []Role       `json:"roles"`
	Permissions []Permission `json:"permissions"`
}

// RoleByName returns the first role whose name equals name.
func (c *RoleCatalog) RoleByName(name string) (Role, bool) {
	if c == nil {
		return Role{}, false
	}
	for _, role := range c.Roles {
		if role.Name == name {
			return role, true
		}
	}
	return Role{}, false
}

// ProfileUpdate is the self-service profile change payload.
type ProfileUpdate struct {
	Gender      string `json:"gender"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// EmployeeAssignment is the administrator payload placing an employee.
type EmployeeAssignment struct {
	EmployeeID string `json:"employeeId"`
	Department int64  `json:"department"`
	Position   int64  `json:"position"`
	Role       int64  `json:"role"`
}

// NewEmployee is the payload for creating an employee.
type NewEmployee struct {
	EmployeeID  string `json:"employeeId"`
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         int    `json:"age,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty"`
	Department  int64  `json:"department"`
	Position    int64  `json:"position"`
	Role        int64  `json:"role"`
}

// RoleInput creates or updates a role. PermissionIDs lists granted permission ids.
type RoleInput struct {
	ID            int64   `json:"id,omitempty"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	PermissionIDs []int64 `json:"permissionIds"`
}

// Department is a node of the organisation tree.
type Department struct {
	DeptID       int64  `json:"deptId"`
	DeptName     string `json:"deptName"`
	DeptNumber   string `json:"deptNumber,omitempty"`
	DeptParentID int64  `json:"deptParentId"`
	Description  string `json:"description,omitempty"`
}

// DepartmentNode is a department with its children, as assembled by BuildDepartmentTree.
type DepartmentNode struct {
	Department
	Children []*DepartmentNode
}

// AttendanceRecord is one day of clock-in data for an employee.
type AttendanceRecord struct {
	ID          int64   `json:"id,omitempty"`
	EmployeeID  string  `json:"employeeId"`
	DeptID      int64   `json:"deptId"`
	CheckInDate string  `json:"checkInDate"`
	OnWorkTime  string  `json:"onWorkTime,omitempty"`
	OffDutyTime string  `json:"offDutyTime,omitempty"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

// ClockedOut reports whether an off-duty time was recorded. The server uses
// "00:00:00" for "not yet".
func (r AttendanceRecord) ClockedOut() bool {
	return r.OffDutyTime != "" && r.OffDutyTime != "00:00:00"
}

// CheckInWindow is the date range during which a department clocks in.
type CheckInWindow struct {
	DeptID       int64  `json:"deptId"`
	SetStartDate string `json:"setStartDate"`
	SetEndDate   string `json:"setEndDate"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
}

// Contains reports whether day falls inside the window, inclusive.
func (w CheckInWindow) Contains(day time.Time) bool {
	start, err := time.Parse(time.DateOnly, w.SetStartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(time.DateOnly, w.SetEndDate)
	if err != nil {
		return false
	}
	d, _ := time.Parse(time.DateOnly, day.Format(time.DateOnly))
	return !d.Before(start) && !d.After(end)
}

// LeaveType classifies a leave request.
type LeaveType int

const (
	LeaveTypeLeave    LeaveType = 1
	LeaveTypeBusiness LeaveType = 2
	LeaveTypeTraining LeaveType = 3
)

func (t LeaveType) String() string {
	switch t {
	case LeaveTypeLeave:
		return "请假"
	case LeaveTypeBusiness:
		return "出差"
	case LeaveTypeTraining:
		return "培训"
	default:
		return "未知类型"
	}
}

// ApprovalStatus is the review state of a leave request.
type ApprovalStatus int

const (
	ApprovalPending    ApprovalStatus = 0
	ApprovalInProgress ApprovalStatus = 1
	ApprovalApproved   ApprovalStatus = 2
	ApprovalRejected   ApprovalStatus = 3
)

func (s ApprovalStatus) String() string {
	switch s {
	case ApprovalPending:
		return "未审批"
	case ApprovalInProgress:
		return "审批中"
	case ApprovalApproved:
		return "批准假期"
	case ApprovalRejected:
		return "驳回请假申请"
	default:
		return "未知状态"
	}
}

// LeaveRecord is a leave request together with its review state.
type LeaveRecord struct {
	ID                   int64          `json:"id"`
	EmployeeID           string         `json:"employeeId,omitempty"`
	EmployeeName         string         `json:"employeeName,omitempty"`
	DeptID               int64          `json:"deptId,omitempty"`
	DeptName             string         `json:"deptName,omitempty"`
	Type                 LeaveType      `json:"type"`
	StartTime            string         `json:"startTime"`
	EndTime              string         `json:"endTime"`
	ApplyTime            string         `json:"applyTime,omitempty"`
	Reason               string         `json:"reason,omitempty"`
	ApprovalStatus       ApprovalStatus `json:"approvalStatus"`
	RevokeStatus         int            `json:"revokeStatus"`
	ExtensionStatus      int            `json:"extensionStatus"`
	PostponedTime        string         `json:"postponedTime,omitempty"`
	ApprovalInstructions string         `json:"approvalInstructions,omitempty"`
}

// CanRevoke reports whether the request may still be withdrawn.
func (r LeaveRecord) CanRevoke() bool {
	return r.ApprovalStatus == ApprovalPending
}

// CanCancelOrExtend reports whether an approved leave may be cancelled early or extended.
func (r LeaveRecord) CanCancelOrExtend() bool {
	return r.ApprovalStatus == ApprovalApproved && r.RevokeStatus != 1
}

// LeaveRequest is the payload for submitting a leave request.
type LeaveRequest struct {
	EmployeeID string    `json:"employeeId"`
	DeptID     int64     `json:"deptId"`
	Type       LeaveType `json:"type"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Reason     string    `json:"reason"`
}

// LeaveExtension asks for a later end time of an approved leave.
type LeaveExtension struct {
	ID            int64  `json:"id"`
	ExtendEndTime string `json:"extendEndTime"`
	Reason        string `json:"reason,omitempty"`
}

// LeaveRecordQuery filters leave records.
type LeaveRecordQuery struct {
	EmployeeID     string
	Page           int
	PageSize       int
	Type           *LeaveType
	ApprovalStatus *ApprovalStatus
}

// ApprovalQuery filters the approval inbox.
type ApprovalQuery struct {
	Page           int
	PageSize       int
	DeptID         int64
	Type           *LeaveType
	ApprovalStatus *ApprovalStatus
}

// ApprovalPage is one page of the approval inbox.
type ApprovalPage struct {
	Total   int64         `json:"total"`
	Records []LeaveRecord `json:"row"`
}

// ApprovalDecision records the reviewer's answer to a leave, revoke or extension request.
type ApprovalDecision struct {
	ID                   int64           `json:"id"`
	ApprovalStatus       *ApprovalStatus `json:"approvalStatus,omitempty"`
	RevokeStatus         *int            `json:"revokeStatus,omitempty"`
	ExtensionStatus      *int            `json:"extensionStatus,omitempty"`
	ApprovalInstructions string          `json:"approvalInstructions,omitempty"`
}

// Announcement is a department notice.
type Announcement struct {
	ID          int64  `json:"id"`
	DeptID      int64  `json:"deptId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishTime string `json:"publishTime"`
}

// AnnouncementUpdate changes selected fields of an announcement.
type AnnouncementUpdate struct {
	ID          int64   `json:"id"`
	DeptID      *int64  `json:"deptId,omitempty"`
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	PublishTime *string `json:"publishTime,omitempty"`
}
