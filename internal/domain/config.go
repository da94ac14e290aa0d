package domain

// Config mirrors stackctl.yaml.
type Config struct {
	ConfigFormatVersion string              `yaml:"config_format_version"`
	Title               string              `yaml:"title"`
	EnvFile             string              `yaml:"env_file"`
	StateDir            string              `yaml:"state_dir"`
	Directories         []string            `yaml:"directories"`
	Engine              EngineSettings      `yaml:"engine"`
	Compose             ComposeSettings     `yaml:"compose"`
	Build               BuildSettings       `yaml:"build"`
	Endpoints           []Endpoint          `yaml:"endpoints"`
	Environment         EnvironmentDefaults `yaml:"environment"`
}

// EngineSettings describes the container engine CLI.
type EngineSettings struct {
	Name        string            `yaml:"name"`
	Binary      string            `yaml:"binary"`
	InstallURLs map[string]string `yaml:"install_urls"`
}

// ComposeSettings adds optional -f/-p arguments to every compose call.
type ComposeSettings struct {
	Files   []string `yaml:"files"`
	Project string   `yaml:"project"`
}

// BuildSettings configures the native and containerized builds.
type BuildSettings struct {
	NativeTool string   `yaml:"native_tool"`
	Runtime    string   `yaml:"runtime"`
	NativeArgs []string `yaml:"native_args"`
	TestArgs   []string `yaml:"test_args"`
	Image      string   `yaml:"image"`
	Context    string   `yaml:"context"`
}

// Endpoint is an access URL printed after a successful start.
type Endpoint struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Note string `yaml:"note,omitempty"`
}

// EnvironmentDefaults are the non-secret values of the generated environment file.
type EnvironmentDefaults struct {
	DatabaseUsername string `yaml:"db_username"`
	DatabaseName     string `yaml:"db_name"`
	BrokerUsername   string `yaml:"broker_username"`
	ServerURL        string `yaml:"server_url"`
	WebsocketPath    string `yaml:"websocket_path"`
}
