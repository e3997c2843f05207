package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/a3tai/mcp-report-extractor/internal/config"
	"github.com/a3tai/mcp-report-extractor/internal/descriptions"
	"github.com/a3tai/mcp-report-extractor/internal/docreader"
	"github.com/a3tai/mcp-report-extractor/internal/extract"
	"github.com/a3tai/mcp-report-extractor/internal/loader"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	validator *docreader.Validator
	discovery *loader.Discovery
	mcpServer *server.MCPServer

	// The directory loader is built on first dataset request so the
	// report directory is scanned with whatever files it holds then
	mu        sync.Mutex
	dirLoader *loader.ReportLoader
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		validator: docreader.NewValidator(cfg.MaxFileSize),
		discovery: loader.NewDiscovery(cfg.MaxFileSize),
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	listDatasetsTool := mcp.NewTool(
		"report_list_datasets",
		mcp.WithDescription(descriptions.GetToolDescription("report_list_datasets")),
	)
	s.mcpServer.AddTool(listDatasetsTool, s.handleListDatasets)

	getDatasetTool := mcp.NewTool(
		"report_get_dataset",
		mcp.WithDescription(descriptions.GetToolDescription("report_get_dataset")),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Dataset name as reported by report_list_datasets"),
		),
	)
	s.mcpServer.AddTool(getDatasetTool, s.handleGetDataset)

	extractFileTool := mcp.NewTool(
		"report_extract_file",
		mcp.WithDescription(descriptions.GetToolDescription("report_extract_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the report file"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	validateFileTool := mcp.NewTool(
		"report_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("report_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the report file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	searchDirectoryTool := mcp.NewTool(
		"report_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("report_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional filename filter"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"report_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("report_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// directoryLoader returns the loader over the configured report
// directory, building it on first use
func (s *Server) directoryLoader() (*loader.ReportLoader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirLoader != nil {
		return s.dirLoader, nil
	}

	files, err := s.discovery.FindReportFiles(s.config.ReportDirectory, "")
	if err != nil {
		return nil, fmt.Errorf("failed to scan report directory: %w", err)
	}

	documents := make([]string, 0, len(files))
	for _, f := range files {
		documents = append(documents, f.Path)
	}

	s.dirLoader = loader.New(loader.Config{
		Documents: documents,
		Source: loader.SourceInfo{
			Name:      s.config.ServerName,
			Version:   s.config.Version,
			Reference: s.config.ReportDirectory,
			Citation:  fmt.Sprintf("Extracted from %d report file(s) in %s", len(documents), s.config.ReportDirectory),
		},
		MaxFileSize:       s.config.MaxFileSize,
		MaxCandidatePages: s.config.MaxCandidatePages,
		ContextWindow:     s.config.ContextWindow,
		Fallback:          loader.FallbackPolicy(s.config.Fallback),
	})
	return s.dirLoader, nil
}

// Handler functions
func (s *Server) handleListDatasets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l, err := s.directoryLoader()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names, err := l.ListDatasets()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(names) == 0 {
		return mcp.NewToolResultText("No datasets available"), nil
	}

	responseText := fmt.Sprintf("Available datasets (%d):\n", len(names))
	for i, name := range names {
		responseText += fmt.Sprintf("%d. %s\n", i+1, name)
	}
	responseText += fmt.Sprintf("\nSource: %s\n", l.Source().Citation)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleGetDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l, err := s.directoryLoader()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ds, err := l.GetDataset(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatDataset(ds)), nil
}

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l := loader.New(loader.Config{
		Documents: []string{path},
		Source: loader.SourceInfo{
			Name:      path,
			Reference: path,
			Citation:  fmt.Sprintf("Extracted from %s", path),
		},
		MaxFileSize:       s.config.MaxFileSize,
		MaxCandidatePages: s.config.MaxCandidatePages,
		ContextWindow:     s.config.ContextWindow,
		Fallback:          loader.FallbackError,
	})

	datasets, err := l.Load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)

	responseText := fmt.Sprintf("Extracted %d dataset(s) from %s\n\n", len(datasets), path)
	for _, name := range names {
		responseText += s.formatDataset(datasets[name])
		responseText += "\n"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.validator.ValidateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Report file %s is valid and readable (%s, %d page(s))",
			result.Path, result.Format, result.Pages)
	} else {
		responseText = fmt.Sprintf("Report validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.ReportDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	files, err := s.discovery.FindReportFiles(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(files) == 0 {
		responseText := fmt.Sprintf("No report files found in directory: %s", directory)
		if query != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", query)
		}
		return mcp.NewToolResultText(responseText), nil
	}

	responseText := fmt.Sprintf("Found %d report file(s) in directory: %s\n", len(files), directory)
	if query != "" {
		responseText += fmt.Sprintf("Search query: %s\n", query)
	}
	responseText += "\nFiles:\n"
	for i, file := range files {
		responseText += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		responseText += fmt.Sprintf("   Path: %s\n", file.Path)
		responseText += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		responseText += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(files)-1 {
			responseText += "\n"
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var text strings.Builder
	fmt.Fprintf(&text, "%s v%s\n", s.config.ServerName, s.config.Version)
	fmt.Fprintf(&text, "Report directory: %s\n", s.config.ReportDirectory)
	fmt.Fprintf(&text, "Max file size: %d bytes\n", s.config.MaxFileSize)
	fmt.Fprintf(&text, "Candidate page cap: %d\n", s.config.MaxCandidatePages)
	fmt.Fprintf(&text, "Empty-extraction policy: %s\n", s.config.Fallback)

	text.WriteString("\nAvailable tools:\n")
	for _, name := range descriptions.ToolNames() {
		desc := descriptions.GetToolDescription(name)
		if i := strings.IndexByte(desc, '\n'); i > 0 {
			desc = desc[:i]
		}
		fmt.Fprintf(&text, "  • %s — %s\n", name, desc)
	}

	text.WriteString("\nStart with report_search_directory to see the available files, " +
		"then report_list_datasets for the extracted data.\n")

	return mcp.NewToolResultText(text.String()), nil
}

// formatDataset renders one dataset with its per-row consensus signal
// so consumers can tell solid extractions from one-off matches
func (s *Server) formatDataset(ds *extract.Dataset) string {
	var text strings.Builder
	fmt.Fprintf(&text, "Dataset: %s (%d row(s))\n", ds.Name, len(ds.Rows))
	fmt.Fprintf(&text, "Citation: %s\n", ds.Citation)

	for i, row := range ds.Rows {
		fmt.Fprintf(&text, "%d. ", i+1)

		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, row[k]))
		}
		text.WriteString(strings.Join(parts, ", "))

		if i < len(ds.Meta) {
			fmt.Fprintf(&text, " [consensus: %s, support: %d]",
				ds.Meta[i].Consensus, ds.Meta[i].Support)
		}
		text.WriteString("\n")
	}
	return text.String()
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting report extractor MCP server in stdio mode")
		log.Printf("Report directory: %s", s.config.ReportDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport only does stdio today
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
