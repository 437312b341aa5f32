package config

// Config is the read-only configuration assembled once at startup and passed
// explicitly to the components that need it. Nothing mutates it afterwards.
type Config interface {
	EnvConfig
	CorsConfig
	ProviderConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetVersion() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// ProviderConfig locates the identity provider and the frontend pages its
// emails redirect back to.
type ProviderConfig interface {
	GetProviderURL() string
	GetProviderAPIKey() string
	GetFrontendURL() string
	GetAuthRedirectURL() string
	GetPasswordResetRedirectURL() string
}

type mainConfig struct {
	EnvVars
	Cors
	Provider
}

func New() Config {
	return mainConfig{}
}
