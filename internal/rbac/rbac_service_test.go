package rbac_test

import (
	"testing"

	"school-hris/internal/rbac"
	"school-hris/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"employee can file leave", rbac.RoleEmployee, "leave", "create", true},
		{"employee can read own credits", rbac.RoleEmployee, "leave-credit", "read", true},
		{"employee cannot approve leave", rbac.RoleEmployee, "leave", "approve", false},
		{"employee cannot manage contracts", rbac.RoleEmployee, "contract", "manage", false},
		{"employee cannot reset credits", rbac.RoleEmployee, "leave-credit", "reset", false},

		{"hr inherits employee leave create", rbac.RoleHR, "leave", "create", true},
		{"hr can approve leave", rbac.RoleHR, "leave", "approve", true},
		{"hr can manage contracts", rbac.RoleHR, "contract", "manage", true},
		{"hr can read audit logs", rbac.RoleHR, "audit", "read", true},
		{"hr cannot reset credits", rbac.RoleHR, "leave-credit", "reset", false},
		{"hr cannot manage credits", rbac.RoleHR, "leave-credit", "manage", false},

		{"mis inherits hr leave approve", rbac.RoleMIS, "leave", "approve", true},
		{"mis inherits employee leave create", rbac.RoleMIS, "leave", "create", true},
		{"mis can reset credits", rbac.RoleMIS, "leave-credit", "reset", true},
		{"mis can manage credits", rbac.RoleMIS, "leave-credit", "manage", true},

		{"unknown role gets nothing", "guest", "leave", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.Enforce(rbac.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}
