package database

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port. Zero selects the driver's default port.
	Port int `mapstructure:"port" default:"0"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"content_storage"`
	// Driver is the database driver (postgres, mysql).
	Driver string `mapstructure:"driver" default:"postgres"`
	// SSLMode is passed to postgres connections (disable, require, verify-full).
	SSLMode string `mapstructure:"ssl_mode" default:"disable"`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DefaultPort returns the configured port, or the driver's well-known port.
func (c Config) DefaultPort() int {
	if c.Port > 0 {
		return c.Port
	}
	if c.Driver == DriverMySQL {
		return 3306
	}
	return 5432
}
