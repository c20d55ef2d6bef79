package config

type Config struct {
	// Dashboard API settings
	ListenAddr  string   `mapstructure:"listenAddr"`
	CORSOrigins []string `mapstructure:"corsOrigins"`

	// Test artifact locations
	ReportFile string `mapstructure:"reportFile"`
	TestsDir   string `mapstructure:"testsDir"`
	RoutesDir  string `mapstructure:"routesDir"`

	// Test runner settings
	PlaywrightCmd string `mapstructure:"playwrightCmd"`
	WorkDir       string `mapstructure:"workDir"`
	RunTimeout    int    `mapstructure:"runTimeout"`

	// Report settings
	ProjectName   string   `mapstructure:"projectName"`
	ReportPath    string   `mapstructure:"reportPath"`
	ReportName    string   `mapstructure:"reportName"`
	ReportFormat  []string `mapstructure:"reportFormat"`
	NoEmailReport bool     `mapstructure:"noEmailReport"`
	Email         string   `mapstructure:"email"`

	// Other settings
	LogLevel string `mapstructure:"logLevel"`

	Args []string
}
