package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Model and policies are compiled in rather than loaded from files: the
// role/permission matrix is part of the application, not deployment config.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Authorizer answers "may this role perform this action on this resource".
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds the enforcer with the built-in permission matrix:
// employees own their requests, managers review them, managers and HR read
// reports, and ADMIN inherits everything.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"EMPLOYEE", "requests", "read"},
		{"EMPLOYEE", "requests", "write"},
		{"EMPLOYEE", "notifications", "read"},
		{"EMPLOYEE", "notifications", "write"},
		{"MANAGER", "requests", "review"},
		{"MANAGER", "reports", "read"},
		{"HR", "reports", "read"},
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, err
	}

	groupings := [][]string{
		{"MANAGER", "EMPLOYEE"},
		{"HR", "EMPLOYEE"},
		{"ADMIN", "MANAGER"},
		{"ADMIN", "HR"},
	}
	if _, err := enforcer.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}

	return &Authorizer{enforcer: enforcer}, nil
}

func (a *Authorizer) Enforce(role, resource, action string) (bool, error) {
	return a.enforcer.Enforce(role, resource, action)
}
