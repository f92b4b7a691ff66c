// Package config provides configuration structures and loading for GoPipeline.
package config

// Config represents the complete application configuration.
type Config struct {
	Sources   SourcesConfig   `yaml:"sources" mapstructure:"sources"`
	Warehouse WarehouseConfig `yaml:"warehouse" mapstructure:"warehouse"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// SourcesConfig sets the record count for each synthetic source
// producer. A count of zero produces an empty table with full schema.
type SourcesConfig struct {
	WebScrapedRecords int `yaml:"web_scraped_records" mapstructure:"web_scraped_records"`
	APIRecords        int `yaml:"api_records" mapstructure:"api_records"`
	DatabaseRecords   int `yaml:"database_records" mapstructure:"database_records"`
	StreamingRecords  int `yaml:"streaming_records" mapstructure:"streaming_records"`
}

// WarehouseConfig represents the warehouse target. The default driver
// is sqlite with a local file path; mysql targets a server using the
// connection fields.
type WarehouseConfig struct {
	Driver             string `yaml:"driver" mapstructure:"driver"` // sqlite or mysql
	Path               string `yaml:"path" mapstructure:"path"`     // sqlite database file
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// ReportConfig represents the run report artifact settings.
type ReportConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // JSON report file
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values: four
// sources with 5000/3000/8000/2000 records and a local sqlite
// warehouse.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			WebScrapedRecords: 5000,
			APIRecords:        3000,
			DatabaseRecords:   8000,
			StreamingRecords:  2000,
		},
		Warehouse: WarehouseConfig{
			Driver:             "sqlite",
			Path:               "data/warehouse.db",
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Report: ReportConfig{
			Path: "data/pipeline_report.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, warehousePath, reportPath string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if warehousePath != "" {
		c.Warehouse.Path = warehousePath
	}
	if reportPath != "" {
		c.Report.Path = reportPath
	}
}
