package utils

import (
	"regexp"
	"strings"
)

const DefaultTenant = "public"

var tenantPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,39}$`)

// NormalizeTenant maps the X-Tenant-ID header to the tenant key every query
// is scoped by. Missing, blank, or malformed values all resolve to the public
// tenant so no caller has to special-case them.
func NormalizeTenant(raw string) string {
	tenant := strings.ToLower(strings.TrimSpace(raw))
	if tenant == "" || !tenantPattern.MatchString(tenant) {
		return DefaultTenant
	}
	return tenant
}
