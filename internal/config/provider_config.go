package config

const (
	providerURLVar    = "PROVIDER_URL"
	providerAPIKeyVar = "PROVIDER_API_KEY"
	frontendURLVar    = "FRONTEND_URL"
)

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetProviderURL() string {
	return GetEnv(providerURLVar, "http://localhost:9999")
}

func (Provider) GetProviderAPIKey() string {
	return GetEnv(providerAPIKeyVar, "")
}

func (Provider) GetFrontendURL() string {
	return GetEnv(frontendURLVar, "http://localhost:3000")
}

// GetAuthRedirectURL is where the confirmation email lands after sign-up.
func (p Provider) GetAuthRedirectURL() string {
	return p.GetFrontendURL() + "/auth/callback"
}

// GetPasswordResetRedirectURL is the frontend page where the user enters a
// new password after following the reset link.
func (p Provider) GetPasswordResetRedirectURL() string {
	return p.GetFrontendURL() + "/auth/reset-password"
}
