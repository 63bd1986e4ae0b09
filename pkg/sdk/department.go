package sdk

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
)

// ListDepartments returns every department as a flat list.
func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	return do[[]Department](c, c.request(ctx), http.MethodGet, "/department")
}

// GetDepartment returns a single department.
func (c *Client) GetDepartment(ctx context.Context, deptID int64) (*Department, error) {
	dept, err := do[Department](c, c.request(ctx), http.MethodGet, "/department/"+strconv.FormatInt(deptID, 10))
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// AddDepartment creates a department.
func (c *Client) AddDepartment(ctx context.Context, dept Department) error {
	if dept.DeptName == "" {
		return errors.New("department name is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(dept), http.MethodPost, "/department")
	return err
}

// UpdateDepartment replaces a department's attributes.
func (c *Client) UpdateDepartment(ctx context.Context, dept Department) error {
	if dept.DeptID == 0 {
		return errors.New("department id is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(dept), http.MethodPatch, "/department")
	return err
}

// DeleteDepartments removes the given departments in one call.
func (c *Client) DeleteDepartments(ctx context.Context, deptIDs []int64) error {
	ids, err := joinIDs(deptIDs)
	if err != nil {
		return err
	}
	_, err = do[Empty](c, c.request(ctx), http.MethodDelete, "/department/"+ids)
	return err
}

// BuildDepartmentTree links departments to their parents. Departments whose
// parent is unknown become roots. Siblings keep the order of the input.
func BuildDepartmentTree(depts []Department) []*DepartmentNode {
	nodes := make(map[int64]*DepartmentNode, len(depts))
	order := make([]int64, 0, len(depts))
	for _, d := range depts {
		if _, dup := nodes[d.DeptID]; dup {
			continue
		}
		nodes[d.DeptID] = &DepartmentNode{Department: d}
		order = append(order, d.DeptID)
	}

	var roots []*DepartmentNode
	for _, id := range order {
		node := nodes[id]
		parent, ok := nodes[node.DeptParentID]
		if !ok || node.DeptParentID == node.DeptID {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// WalkDepartments visits every node depth-first, passing its depth.
func WalkDepartments(roots []*DepartmentNode, fn func(node *DepartmentNode, depth int)) {
	var walk func([]*DepartmentNode, int)
	walk = func(nodes []*DepartmentNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
}

// SortDepartmentsByNumber orders a flat list by department number, then id.
func SortDepartmentsByNumber(depts []Department) {
	sort.SliceStable(depts, func(i, j int) bool {
		if depts[i].DeptNumber != depts[j].DeptNumber {
			return depts[i].DeptNumber < depts[j].DeptNumber
		}
		return depts[i].DeptID < depts[j].DeptID
	})
}
