package config

// ReporterConfig defines configuration for writing scan reports
type ReporterConfig struct {
	OutputFile  string `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,reportformat"`
	ReportTitle string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
	// Directory for parquet exports when OutputFile is not a .parquet path.
	ParquetDir string `json:"parquet_dir,omitempty" yaml:"parquet_dir,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Format:      DefaultReporterFormat,
		ReportTitle: DefaultReporterTitle,
		ParquetDir:  DefaultReporterParquetDir,
	}
}
