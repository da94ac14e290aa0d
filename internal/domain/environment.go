package domain

// ConfigState reports what EnsureConfig did.
type ConfigState int

const (
	ConfigAlreadyPresent ConfigState = iota
	ConfigCreated
)

func (s ConfigState) String() string {
	switch s {
	case ConfigCreated:
		return "created"
	case ConfigAlreadyPresent:
		return "already-present"
	default:
		return "unknown"
	}
}

// Secret lengths of the generated environment file.
const (
	DatabasePasswordLength     = 32
	SigningSecretLength        = 64
	ObjectStoreAccessKeyLength = 24
	ObjectStoreSecretKeyLength = 48
	BrokerPasswordLength       = 24
)

// EnvironmentConfig is the record rendered into the environment file on first run.
type EnvironmentConfig struct {
	DatabaseUsername     string
	DatabasePassword     string
	DatabaseName         string
	SigningSecret        string
	ObjectStoreAccessKey string
	ObjectStoreSecretKey string
	BrokerUsername       string
	BrokerPassword       string
	ServerURL            string
	WebsocketPath        string
	Platform             string
}

// PlatformName returns the display name of a GOOS value.
func PlatformName(goos string) string {
	switch goos {
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return goos
	}
}
