package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Login exchanges employee credentials for a session token and stores it
// with the standard session lifetime.
func (c *Client) Login(ctx context.Context, employeeID, password string) (*Token, error) {
	if employeeID == "" || password == "" {
		return nil, errors.New("employee id and password are required")
	}

	req := c.request(ctx).SetFormData(map[string]string{
		"employeeId": employeeID,
		"password":   password,
	})
	value, err := do[string](c, req, http.MethodPost, loginPath)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, &APIError{Op: http.MethodPost + " " + loginPath, Message: "login response carried no token", Err: ErrRejected}
	}

	token := NewToken(value, time.Now())
	token.EmployeeID = employeeID
	if err := c.tokens.SaveToken(token); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	return token, nil
}

// Logout forgets the stored session token. The API has no server side logout.
func (c *Client) Logout() error {
	return c.tokens.DeleteToken()
}

// GetUserInfo returns the identity of the logged in user.
func (c *Client) GetUserInfo(ctx context.Context) (*Identity, error) {
	identity, err := doRequired[Identity](c, c.request(ctx), http.MethodGet, "/getEmpInfo/personal")
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// UpdateUserInfo changes the logged in user's own profile.
func (c *Client) UpdateUserInfo(ctx context.Context, update ProfileUpdate) error {
	_, err := do[Empty](c, c.request(ctx).SetBody(update), http.MethodPatch, "/updateInfo")
	return err
}

// ChangePassword changes the logged in user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	_, err := do[Empty](c, c.request(ctx).SetBody(body), http.MethodPatch, "/updatepwd")
	return err
}

// UpdateEmployeeProfile reassigns an employee's department, position and role.
func (c *Client) UpdateEmployeeProfile(ctx context.Context, assignment EmployeeAssignment) error {
	if assignment.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(assignment), http.MethodPatch, "/updateProfile")
	return err
}

// ResetEmployeePassword sets a new password for an employee.
func (c *Client) ResetEmployeePassword(ctx context.Context, employeeID, newPassword string) error {
	body := map[string]string{"employeeId": employeeID, "newPassword": newPassword}
	_, err := do[Empty](c, c.request(ctx).SetBody(body), http.MethodPatch, "/resetpwd")
	return err
}

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]Identity, error) {
	return do[[]Identity](c, c.request(ctx), http.MethodGet, "/getEmpInfo")
}

// GetEmployee returns a single employee.
func (c *Client) GetEmployee(ctx context.Context, employeeID string) (*Identity, error) {
	if employeeID == "" {
		return nil, errors.New("employee id is required")
	}
	identity, err := do[Identity](c, c.request(ctx), http.MethodGet, "/getEmpInfo/"+employeeID)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// DeleteEmployees removes the given employees in one call.
func (c *Client) DeleteEmployees(ctx context.Context, employeeIDs []string) error {
	ids, err := joinIDs(employeeIDs)
	if err != nil {
		return err
	}
	_, err = do[Empty](c, c.request(ctx), http.MethodDelete, "/deleteEmployees/"+ids)
	return err
}

// AddEmployee creates an employee.
func (c *Client) AddEmployee(ctx context.Context, employee NewEmployee) error {
	if employee.EmployeeID == "" {
		return errors.New("employee id is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(employee), http.MethodPost, "/addEmployee")
	return err
}
