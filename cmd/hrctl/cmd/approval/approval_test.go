package approval

import (
	"bytes"
	"testing"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    *sdk.ApprovalStatus
		wantErr bool
	}{
		{in: ""},
		{in: "pending", want: ptr(sdk.ApprovalPending)},
		{in: "rejected", want: ptr(sdk.ApprovalRejected)},
		{in: "2", want: ptr(sdk.ApprovalApproved)},
		{in: "4", wantErr: true},
		{in: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteApprovals(t *testing.T) {
	var buf bytes.Buffer
	writeApprovals(&buf, []sdk.LeaveRecord{
		{ID: 5, EmployeeName: "alice", DeptName: "人事部", Type: sdk.LeaveTypeBusiness, ApprovalStatus: sdk.ApprovalPending, Reason: "客户拜访"},
	})
	assert.Contains(t, buf.String(), "alice")
	assert.Contains(t, buf.String(), "出差")
	assert.Contains(t, buf.String(), "未审批")
}

func ptr(s sdk.ApprovalStatus) *sdk.ApprovalStatus { return &s }
