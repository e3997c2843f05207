// Package descriptions centralizes the MCP tool descriptions so the
// server registration and the server-info tool stay in sync.
package descriptions

const (
	ReportListDatasetsDescription = `List the structured datasets extracted from the configured report directory.

**When to use:** Discover which datasets (adoption trends, sector adoption, GDP impact, ...) are available before requesting rows.

**Notes:** Extraction runs once per server lifetime; listing never re-reads the documents. Datasets that failed schema validation are not listed.`

	ReportGetDatasetDescription = `Return the rows of one extracted dataset by name.

**When to use:** Fetch the reconciled, validated rows for a dataset reported by report_list_datasets.

**Notes:** Each row carries a consensus level (High/Medium/Low) summarizing how well independent extractions agreed. A citation line identifies the source; fallback reference data is always labeled as such.`

	ReportExtractFileDescription = `Run the extraction pipeline against a single report file (PDF or Excel workbook).

**When to use:** Ad hoc extraction from a file that is not part of the configured report set.

**Notes:** Best-effort heuristic extraction; topics whose keywords match no pages come back empty rather than failing. An unreadable file is an error.`

	ReportValidateFileDescription = `Validate that a file is a readable report document.

**When to use:** Check a file before extraction. For PDFs this verifies the structure with two independent backends and cross-checks the page count; for workbooks it verifies the sheet list.`

	ReportSearchDirectoryDescription = `Search a directory tree for report files (.pdf, .xlsx, .xlsm) with an optional name filter.`

	ReportServerInfoDescription = `Get server information: version, configured report directory, available tools and usage guidance.`
)

// toolDescriptions maps tool names to their descriptions
var toolDescriptions = map[string]string{
	"report_list_datasets":    ReportListDatasetsDescription,
	"report_get_dataset":      ReportGetDatasetDescription,
	"report_extract_file":     ReportExtractFileDescription,
	"report_validate_file":    ReportValidateFileDescription,
	"report_search_directory": ReportSearchDirectoryDescription,
	"report_server_info":      ReportServerInfoDescription,
}

// GetToolDescription returns the description for a tool name, or an
// empty string for unknown tools
func GetToolDescription(name string) string {
	return toolDescriptions[name]
}

// ToolNames returns the registered tool names
func ToolNames() []string {
	return []string{
		"report_list_datasets",
		"report_get_dataset",
		"report_extract_file",
		"report_validate_file",
		"report_search_directory",
		"report_server_info",
	}
}
