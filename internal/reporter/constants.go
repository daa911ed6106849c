package reporter

const (
	DefaultReportTemplateName = "report.html.tmpl"

	EmbeddedCSSPath = "assets/css/report.css"
	EmbeddedJSPath  = "assets/js/report.js"

	DefaultReportTitle = "JSMonster Scan Report"

	// Output formats
	FormatHTML    = "html"
	FormatJSON    = "json"
	FormatParquet = "parquet"

	DirPermissions  = 0755
	FilePermissions = 0644

	// Longest finding value shown in the HTML tables before truncation.
	MaxDisplayValueLength = 120
)
