package gateway

// Config holds configuration for the content gateway.
type Config struct {
	// Driver selects the backend (file, s3).
	Driver string `mapstructure:"driver" default:"file"`
	// Root is the directory documents are resolved against by the file driver.
	Root string `mapstructure:"root" default:"."`
	// Backup keeps the previous content as <name>.bak before overwriting.
	Backup bool `mapstructure:"backup" default:"true"`
}

const (
	DriverFile = "file"
	DriverS3   = "s3"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverFile, DriverS3:
		return true
	default:
		return false
	}
}
