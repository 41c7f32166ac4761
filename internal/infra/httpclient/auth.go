package httpclient

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ProjectRoles are the realm roles created for every project.
var ProjectRoles = []string{"admin", "collaborator", "contributor"}

const (
	platformAdminRole = "platform-admin"
	adminsPageSize    = 1000
)

// User is an entry of the identity service's user listing. Only the name is
// used here.
type User struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type CreateUserGroupRequest struct {
	GroupName   string  `json:"group_name"`
	Description *string `json:"description"`
}

type CreateUserRolesRequest struct {
	ProjectRoles []string `json:"project_roles"`
	ProjectCode  string   `json:"project_code"`
}

type DefaultPermissionsRequest struct {
	ProjectCode string `json:"project_code"`
}

type RoleUsersRequest struct {
	RoleNames []string `json:"role_names"`
	Status    string   `json:"status"`
	PageSize  int      `json:"page_size"`
}

type RoleUsersResponse struct {
	Result []User `json:"result"`
}

// AuthClient talks to the identity service.
type AuthClient struct {
	jsonClient
}

func NewAuthClient(baseURL string, timeout time.Duration, log *zap.Logger) *AuthClient {
	return &AuthClient{jsonClient: newJSONClient("auth", baseURL, timeout, log)}
}

func (c *AuthClient) CreateUserGroups(ctx context.Context, projectCode string, description *string) error {
	return c.post(ctx, fmt.Sprintf("create user groups for project %q", projectCode), "/v1/user/group",
		CreateUserGroupRequest{GroupName: projectCode, Description: description}, nil)
}

func (c *AuthClient) CreateUserRoles(ctx context.Context, projectCode string) error {
	return c.post(ctx, fmt.Sprintf("create user roles for project %q", projectCode), "/v1/admin/users/realm-roles",
		CreateUserRolesRequest{ProjectRoles: ProjectRoles, ProjectCode: projectCode}, nil)
}

func (c *AuthClient) CreateDefaultPermissions(ctx context.Context, projectCode string) error {
	return c.post(ctx, fmt.Sprintf("create default permissions for project %q", projectCode), "/v1/defaultroles",
		DefaultPermissionsRequest{ProjectCode: projectCode}, nil)
}

// GetPlatformAdmins returns the active holders of the platform admin role.
func (c *AuthClient) GetPlatformAdmins(ctx context.Context) ([]User, error) {
	var out RoleUsersResponse
	err := c.post(ctx, "fetch platform admins", "/v1/admin/roles/users", RoleUsersRequest{
		RoleNames: []string{platformAdminRole},
		Status:    "active",
		PageSize:  adminsPageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Result == nil {
		return []User{}, nil
	}
	return out.Result, nil
}
