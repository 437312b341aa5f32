package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteAuthRegister      = "/auth/register"
	RouteAuthLogin         = "/auth/login"
	RouteAuthLogout        = "/auth/logout"
	RouteAuthRefresh       = "/auth/refresh"
	RouteAuthResetPassword = "/auth/reset-password"
	RouteAuthVerify        = "/auth/verify"

	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
