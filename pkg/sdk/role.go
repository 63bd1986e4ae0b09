package sdk

import (
	"context"
	"errors"
	"net/http"
)

// FetchRoles returns the full role and permission catalog.
func (c *Client) FetchRoles(ctx context.Context) (*RoleCatalog, error) {
	catalog, err := doRequired[RoleCatalog](c, c.request(ctx), http.MethodGet, "/roles")
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

// AddRole creates a role.
func (c *Client) AddRole(ctx context.Context, role RoleInput) error {
	if role.Name == "" {
		return errors.New("role name is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(role), http.MethodPost, "/roles")
	return err
}

// UpdateRole changes a role's name, description or permissions.
func (c *Client) UpdateRole(ctx context.Context, role RoleInput) error {
	if role.ID == 0 {
		return errors.New("role id is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(role), http.MethodPatch, "/roles")
	return err
}

// DeleteRoles removes the given roles in one call.
func (c *Client) DeleteRoles(ctx context.Context, roleIDs []int64) error {
	ids, err := joinIDs(roleIDs)
	if err != nil {
		return err
	}
	_, err = do[Empty](c, c.request(ctx), http.MethodDelete, "/roles/"+ids)
	return err
}
