package sdk_test

import (
	"testing"

	"github.com/SoloCapybara/HRMS-NEXT/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDepartmentTree(t *testing.T) {
	depts := []sdk.Department{
		{DeptID: 1, DeptName: "总公司"},
		{DeptID: 2, DeptName: "人事部", DeptParentID: 1},
		{DeptID: 3, DeptName: "招聘组", DeptParentID: 2},
		{DeptID: 4, DeptName: "技术部", DeptParentID: 1},
		{DeptID: 5, DeptName: "外包", DeptParentID: 99},
		{DeptID: 2, DeptName: "duplicate", DeptParentID: 1},
	}

	roots := sdk.BuildDepartmentTree(depts)
	require.Len(t, roots, 2)
	assert.Equal(t, "总公司", roots[0].DeptName)
	assert.Equal(t, "外包", roots[1].DeptName, "orphans become roots")

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "人事部", roots[0].Children[0].DeptName)
	assert.Equal(t, "技术部", roots[0].Children[1].DeptName)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "招聘组", roots[0].Children[0].Children[0].DeptName)

	var visited []string
	var depths []int
	sdk.WalkDepartments(roots, func(n *sdk.DepartmentNode, depth int) {
		visited = append(visited, n.DeptName)
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"总公司", "人事部", "招聘组", "技术部", "外包"}, visited)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
}

func TestBuildDepartmentTree_SelfParentIsRoot(t *testing.T) {
	roots := sdk.BuildDepartmentTree([]sdk.Department{{DeptID: 7, DeptName: "loop", DeptParentID: 7}})
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
}

func TestSortDepartmentsByNumber(t *testing.T) {
	depts := []sdk.Department{
		{DeptID: 3, DeptNumber: "B01"},
		{DeptID: 2, DeptNumber: "A01"},
		{DeptID: 1, DeptNumber: "B01"},
	}
	sdk.SortDepartmentsByNumber(depts)
	assert.Equal(t, int64(2), depts[0].DeptID)
	assert.Equal(t, int64(1), depts[1].DeptID)
	assert.Equal(t, int64(3), depts[2].DeptID)
}
