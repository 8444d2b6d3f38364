package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	e, err := NewEnforcer()
	assert.NoError(t, err)
	return NewService(e)
}

func TestEnforce_RoleHierarchy(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"user", "timesheet", "read", true},
		{"user", "timesheet", "update", false},
		{"user", "device", "read", false},
		{"admin", "timesheet", "read", true},
		{"admin", "timesheet", "update", true},
		{"admin", "device", "update", true},
		{"super_admin", "timesheet", "update", true},
		{"super_admin", "device", "create", true},
		{"unknown", "timesheet", "read", false},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
