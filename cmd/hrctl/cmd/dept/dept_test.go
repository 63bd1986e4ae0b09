package dept

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDepartmentTree_IndentsChildren(t *testing.T) {
	roots := sdk.BuildDepartmentTree([]sdk.Department{
		{DeptID: 1, DeptName: "总公司", DeptNumber: "A"},
		{DeptID: 2, DeptName: "人事部", DeptNumber: "A1", DeptParentID: 1},
	})

	var buf bytes.Buffer
	writeDepartmentTree(&buf, roots)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "总公司"))
	assert.True(t, strings.HasPrefix(lines[2], "  人事部"))
}

func TestWriteDepartments(t *testing.T) {
	var buf bytes.Buffer
	writeDepartments(&buf, []sdk.Department{{DeptID: 7, DeptNumber: "B01", DeptName: "技术部", DeptParentID: 1}})
	assert.Contains(t, buf.String(), "B01")
	assert.Contains(t, buf.String(), "技术部")
}
