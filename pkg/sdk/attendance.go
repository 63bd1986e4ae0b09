package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// ClockKind selects which half of the day a clock event records.
type ClockKind int

const (
	ClockIn ClockKind = iota
	ClockOut
)

// ClockEvent is a single clock-in or clock-out.
type ClockEvent struct {
	EmployeeID string
	DeptID     int64
	Kind       ClockKind
	At         time.Time
	Longitude  float64
	Latitude   float64
}

func (e ClockEvent) record() AttendanceRecord {
	rec := AttendanceRecord{
		EmployeeID:  e.EmployeeID,
		DeptID:      e.DeptID,
		CheckInDate: e.At.Format(time.DateOnly),
		Longitude:   e.Longitude,
		Latitude:    e.Latitude,
	}
	if e.Kind == ClockIn {
		rec.OnWorkTime = e.At.Format(time.TimeOnly)
	} else {
		rec.OffDutyTime = e.At.Format(time.TimeOnly)
	}
	return rec
}

// PostAttendance records a clock event with the caller's location.
func (c *Client) PostAttendance(ctx context.Context, event ClockEvent) error {
	if event.EmployeeID == "" || event.DeptID == 0 {
		return errors.New("employee id and department are required to clock in")
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(event.record()), http.MethodPost, "/attendance/location")
	return err
}

// GetAttendanceRecords returns one employee's attendance history.
func (c *Client) GetAttendanceRecords(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	if employeeID == "" {
		return nil, errors.New("employee id is required")
	}
	return do[[]AttendanceRecord](c, c.request(ctx), http.MethodGet, "/attendance/getRecords/"+employeeID)
}

// ListAttendanceRecords returns the attendance history of every employee.
func (c *Client) ListAttendanceRecords(ctx context.Context) ([]AttendanceRecord, error) {
	return do[[]AttendanceRecord](c, c.request(ctx), http.MethodGet, "/attendance/getRecords")
}

// SetCheckInTime configures a department's clock-in window.
func (c *Client) SetCheckInTime(ctx context.Context, window CheckInWindow) error {
	_, err := do[Empty](c, c.request(ctx).SetBody(window), http.MethodPost, "/attendance/setCheckInTime")
	return err
}

// GetCheckInTime returns a department's clock-in window.
func (c *Client) GetCheckInTime(ctx context.Context, deptID int64) (*CheckInWindow, error) {
	window, err := do[CheckInWindow](c, c.request(ctx), http.MethodGet, "/attendance/getCheckInTime/"+strconv.FormatInt(deptID, 10))
	if err != nil {
		return nil, err
	}
	return &window, nil
}

// TodayRecord finds the record for day in records.
func TodayRecord(records []AttendanceRecord, day time.Time) (AttendanceRecord, bool) {
	date := day.Format(time.DateOnly)
	for _, r := range records {
		if r.CheckInDate == date {
			return r, true
		}
	}
	return AttendanceRecord{}, false
}

// leaveRecordList accepts either a bare array or a {"row": [...]} page.
type leaveRecordList []LeaveRecord

func (l *leaveRecordList) UnmarshalJSON(data []byte) error {
	var list []LeaveRecord
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var page struct {
		Row []LeaveRecord `json:"row"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	*l = page.Row
	return nil
}

// ListLeaveRecords returns leave records matching query.
func (c *Client) ListLeaveRecords(ctx context.Context, query LeaveRecordQuery) ([]LeaveRecord, error) {
	params := map[string]string{}
	if query.EmployeeID != "" {
		params["employeeId"] = query.EmployeeID
	}
	if query.Page > 0 {
		params["page"] = strconv.Itoa(query.Page)
	}
	if query.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(query.PageSize)
	}
	if query.Type != nil {
		params["type"] = strconv.Itoa(int(*query.Type))
	}
	if query.ApprovalStatus != nil {
		params["approvalStatus"] = strconv.Itoa(int(*query.ApprovalStatus))
	}
	records, err := do[leaveRecordList](c, c.request(ctx).SetQueryParams(params), http.MethodGet, "/attendance/leaveRecord")
	return []LeaveRecord(records), err
}

// PostLeaveRequest submits a leave request.
func (c *Client) PostLeaveRequest(ctx context.Context, leave LeaveRequest) error {
	if leave.StartTime == "" || leave.EndTime == "" {
		return errors.New("leave start and end time are required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(leave), http.MethodPost, "/attendance/leave")
	return err
}

// UpdateLeaveReason changes the reason of a pending leave request.
func (c *Client) UpdateLeaveReason(ctx context.Context, id int64, reason string) error {
	body := map[string]any{"id": id, "reason": reason}
	_, err := do[Empty](c, c.request(ctx).SetBody(body), http.MethodPatch, "/attendance/updateLeaveRecord")
	return err
}

// UpdateLeaveRequest replaces a leave request's attributes.
func (c *Client) UpdateLeaveRequest(ctx context.Context, id int64, leave LeaveRequest) error {
	_, err := do[Empty](c, c.request(ctx).SetBody(leave), http.MethodPatch, "/attendance/leaveRecord/"+strconv.FormatInt(id, 10))
	return err
}

// DeleteLeaveRecords withdraws the given leave requests.
func (c *Client) DeleteLeaveRecords(ctx context.Context, ids []int64) error {
	joined, err := joinIDs(ids)
	if err != nil {
		return err
	}
	_, err = do[Empty](c, c.request(ctx), http.MethodDelete, "/attendance/deleteLeaveRecord/"+joined)
	return err
}

// RevokeLeave asks to end an approved leave early.
func (c *Client) RevokeLeave(ctx context.Context, id int64) error {
	_, err := do[Empty](c, c.request(ctx), http.MethodPatch, "/attendance/cancelLeaveRecord/"+strconv.FormatInt(id, 10))
	return err
}

// ExtendLeave asks to move the end of an approved leave.
func (c *Client) ExtendLeave(ctx context.Context, ext LeaveExtension) error {
	if ext.ID == 0 {
		return errors.New("leave id is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(ext), http.MethodPatch, "/attendance/leaveRecord/"+strconv.FormatInt(ext.ID, 10))
	return err
}
