// Package rbac gates every route on one of the three fixed roles:
// employee, hr, and mis. hr inherits everything an employee may do and
// mis inherits everything hr may do.
package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleMIS      = "mis"
)

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}

// policy rows are resource/action pairs granted directly to a role; role
// inheritance supplies the rest.
var rolePolicies = [][3]string{
	// every authenticated employee
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave-credit", "read"},
	{RoleEmployee, "document", "create"},
	{RoleEmployee, "document", "read"},
	{RoleEmployee, "certificate", "create"},
	{RoleEmployee, "certificate", "read"},
	{RoleEmployee, "profile-change", "create"},
	{RoleEmployee, "profile-change", "read"},
	{RoleEmployee, "notification", "read"},
	{RoleEmployee, "employee", "read-self"},

	// hr on top of employee
	{RoleHR, "employee", "read"},
	{RoleHR, "employee", "manage"},
	{RoleHR, "contract", "read"},
	{RoleHR, "contract", "manage"},
	{RoleHR, "leave", "approve"},
	{RoleHR, "leave", "read-all"},
	{RoleHR, "leave-credit", "read-all"},
	{RoleHR, "document", "approve"},
	{RoleHR, "document", "request"},
	{RoleHR, "certificate", "approve"},
	{RoleHR, "profile-change", "approve"},
	{RoleHR, "department", "manage"},
	{RoleHR, "department", "read"},
	{RoleHR, "audit", "read"},

	// mis on top of hr
	{RoleMIS, "leave-credit", "reset"},
	{RoleMIS, "leave-credit", "manage"},
}

var roleInheritance = [][2]string{
	{RoleHR, RoleEmployee},
	{RoleMIS, RoleHR},
}

func (s *service) loadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, p := range rolePolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range roleInheritance {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	return nil
}
