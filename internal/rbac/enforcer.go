package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

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

// policies maps the three back-office roles onto resources. The role
// hierarchy is user < admin < super_admin; location scoping for the
// user role is enforced separately at the row level.
var policies = [][]string{
	{"user", "timesheet", "read"},
	{"admin", "timesheet", "update"},
	{"admin", "device", "create"},
	{"admin", "device", "read"},
	{"admin", "device", "update"},
}

var groupings = [][]string{
	{"admin", "user"},
	{"super_admin", "admin"},
}

// NewEnforcer builds the static role policy. Policies live in code
// rather than a .conf file: the role set is fixed by the product, not
// configurable per tenant.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
