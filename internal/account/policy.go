package account

import (
	"os"
	"strings"
)

// AdminPolicy decides the role of a newly created account from an
// explicit allow-list of contacts. It is consulted only at creation;
// existing accounts keep their stored role.
type AdminPolicy struct {
	contacts map[string]struct{}
}

// NewAdminPolicy builds a policy admitting the given contacts.
func NewAdminPolicy(contacts ...string) AdminPolicy {
	p := AdminPolicy{contacts: make(map[string]struct{}, len(contacts))}
	for _, c := range contacts {
		if n := NormalizeMobile(c); n != "" {
			p.contacts[n] = struct{}{}
		}
	}
	return p
}

// AdminPolicyFromEnv reads a comma-separated allow-list from
// LIFEWHEEL_ADMIN_CONTACTS.
func AdminPolicyFromEnv() AdminPolicy {
	return NewAdminPolicy(strings.Split(os.Getenv("LIFEWHEEL_ADMIN_CONTACTS"), ",")...)
}

// RoleFor returns the role a new account with contact receives.
func (p AdminPolicy) RoleFor(contact string) Role {
	if _, ok := p.contacts[NormalizeMobile(contact)]; ok {
		return RoleAdmin
	}
	return RoleUser
}

// Len returns the number of allow-listed contacts.
func (p AdminPolicy) Len() int {
	return len(p.contacts)
}
