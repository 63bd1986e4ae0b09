package sdk

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

// ListLeaveApprovals returns one page of leave requests awaiting review.
func (c *Client) ListLeaveApprovals(ctx context.Context, query ApprovalQuery) (*ApprovalPage, error) {
	params := map[string]string{}
	if query.Page > 0 {
		params["page"] = strconv.Itoa(query.Page)
	}
	if query.PageSize > 0 {
		params["pageSize"] = strconv.Itoa(query.PageSize)
	}
	if query.DeptID > 0 {
		params["deptId"] = strconv.FormatInt(query.DeptID, 10)
	}
	if query.Type != nil {
		params["type"] = strconv.Itoa(int(*query.Type))
	}
	if query.ApprovalStatus != nil {
		params["approvalStatus"] = strconv.Itoa(int(*query.ApprovalStatus))
	}

	page, err := do[ApprovalPage](c, c.request(ctx).SetQueryParams(params), http.MethodGet, "/approval")
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// SaveApproval submits a reviewer decision. The same endpoint answers leave,
// revoke and extension requests depending on which status is set.
func (c *Client) SaveApproval(ctx context.Context, decision ApprovalDecision) error {
	if decision.ID == 0 {
		return errors.New("leave id is required")
	}
	if decision.ApprovalStatus == nil && decision.RevokeStatus == nil && decision.ExtensionStatus == nil {
		return errors.New("a decision status is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(decision), http.MethodPatch, "/approval")
	return err
}
