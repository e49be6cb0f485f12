package auth

// OAuth scopes understood by the report API.
const (
	ScopeReportsWrite = "reports:write"
	ScopeReportsRead  = "reports:read"
)
