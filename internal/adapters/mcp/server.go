// Package mcp exposes the carbondash queries as Model Context Protocol
// tools, so AI agents can pull series and heatmaps directly.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carbondash/carbondash"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SeriesResponse wraps the series query result for structured tool output.
type SeriesResponse struct {
	Series []domain.Series `json:"series" jsonschema_description:"One trace per requested area"`
}

// HeatmapResponse wraps the heatmap query result for structured tool output.
type HeatmapResponse struct {
	Heatmap *domain.Heatmap `json:"heatmap" jsonschema_description:"Area-by-year grid of yearly means"`
}

// Service defines the query surface required by the MCP server.
type Service interface {
	Areas() []string
	Series(ctx context.Context, areas []string) ([]domain.Series, error)
	Heatmap(ctx context.Context, areas []string) (*domain.Heatmap, error)
	Summary() domain.Summary
}

// Server wraps the carbondash Service and exposes it as an MCP Server.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("carbondash-mcp", strings.TrimSpace(carbondash.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_areas
	s.mcpServer.AddTool(mcp.NewTool("list_areas",
		mcp.WithDescription("List the distinct areas (countries) available in the dataset."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.svc.Areas())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_series
	seriesTool := mcp.NewTool("get_series",
		mcp.WithDescription("Get the chronological metric trace per area, with min/max points marked."),
		mcp.WithString("areas", mcp.Required(), mcp.Description("Comma-separated area names")),
		mcp.WithOutputSchema[SeriesResponse](),
	)
	s.mcpServer.AddTool(seriesTool, mcp.NewStructuredToolHandler(s.handleGetSeries))

	// TOOL: get_heatmap
	heatmapTool := mcp.NewTool("get_heatmap",
		mcp.WithDescription("Get the area-by-year grid of yearly mean values."),
		mcp.WithString("areas", mcp.Required(), mcp.Description("Comma-separated area names")),
		mcp.WithOutputSchema[HeatmapResponse](),
	)
	s.mcpServer.AddTool(heatmapTool, mcp.NewStructuredToolHandler(s.handleGetHeatmap))

	// TOOL: get_summary
	s.mcpServer.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Describe the loaded dataset: metric, row count, areas, date range."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.svc.Summary())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleGetSeries(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SeriesResponse, error) {
	areas, err := splitAreas(args)
	if err != nil {
		return SeriesResponse{}, err
	}

	series, err := s.svc.Series(ctx, areas)
	if err != nil {
		return SeriesResponse{}, fmt.Errorf("series query failed: %w", err)
	}
	return SeriesResponse{Series: series}, nil
}

func (s *Server) handleGetHeatmap(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (HeatmapResponse, error) {
	areas, err := splitAreas(args)
	if err != nil {
		return HeatmapResponse{}, err
	}

	hm, err := s.svc.Heatmap(ctx, areas)
	if err != nil {
		return HeatmapResponse{}, fmt.Errorf("heatmap query failed: %w", err)
	}
	return HeatmapResponse{Heatmap: hm}, nil
}

func splitAreas(args map[string]interface{}) ([]string, error) {
	raw, _ := args["areas"].(string)
	if raw == "" {
		return nil, fmt.Errorf("areas argument is required")
	}

	var areas []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("areas argument is empty")
	}
	return areas, nil
}

func (s *Server) registerResources() {
	// EXPOSE: carbondash://summary
	s.mcpServer.AddResource(mcp.NewResource("carbondash://summary", "Dataset Summary",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.svc.Summary())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal summary: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "carbondash://summary",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
