// Package mcp exposes the clustering and repair planning stages as MCP
// tools so coding agents can drive remedy over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/remedykit/remedy-cli/internal/cluster"
	"github.com/remedykit/remedy-cli/internal/diag"
	"github.com/remedykit/remedy-cli/internal/generator"
	"github.com/remedykit/remedy-cli/internal/pipeline"
	"github.com/remedykit/remedy-cli/internal/rule"
	"go.uber.org/zap"
)

// Server is an MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	cfg pipeline.Config
	gen generator.FixGenerator // nil disables suggestion tier 2
	log *zap.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(cfg pipeline.Config, gen generator.FixGenerator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, gen: gen, log: log}
}

// ClusterErrorsInput represents the input schema for the cluster_errors tool.
type ClusterErrorsInput struct {
	Tool   string `json:"tool" jsonschema:"Diagnostic tool that produced the output. Supported: tsc, gobuild"`
	Output string `json:"output" jsonschema:"Raw diagnostic output to parse and cluster"`
}

// SuggestFixesInput represents the input schema for the suggest_fixes tool.
type SuggestFixesInput struct {
	Tool           string `json:"tool" jsonschema:"Diagnostic tool that produced the output. Supported: tsc, gobuild"`
	Output         string `json:"output" jsonschema:"Raw diagnostic output to repair"`
	SupportingDocs string `json:"supporting_docs,omitempty" jsonschema:"Upgrade notes or changelog text to guide generated fixes (optional)"`
}

// Start runs the server over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "remedy",
		Version: "1.0.0",
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "cluster_errors",
		Description: "Parse raw compiler or build output and group the diagnostics into error clusters by message shape. Use this first to see how many distinct problems an upgrade caused.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClusterErrorsInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		result, err := s.handleClusterErrors(input)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "suggest_fixes",
		Description: "Cluster diagnostics and propose unified-diff patches: deterministic rules first, then generated fixes for unmatched clusters. Patches are returned for review, never applied.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input SuggestFixesInput) (*sdkmcp.CallToolResult, map[string]any, error) {
		result, err := s.handleSuggestFixes(ctx, input)
		if err != nil {
			return &sdkmcp.CallToolResult{IsError: true}, nil, err
		}
		return nil, result, nil
	})

	fmt.Fprintln(os.Stderr, "remedy MCP server started (stdio mode)")
	fmt.Fprintln(os.Stderr, "Available tools: cluster_errors, suggest_fixes")

	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

// parseDiagnostics resolves the adapter and parses the raw output.
func (s *Server) parseDiagnostics(tool, output string) ([]diag.Diagnostic, error) {
	adapter, err := diag.Global().Get(tool)
	if err != nil {
		return nil, fmt.Errorf("unknown tool %q: supported tools are %s", tool, strings.Join(diag.Global().Names(), ", "))
	}
	return adapter.ParseOutput(output)
}

// handleClusterErrors parses and clusters diagnostics, returning a
// per-cluster text report.
func (s *Server) handleClusterErrors(input ClusterErrorsInput) (map[string]any, error) {
	diagnostics, err := s.parseDiagnostics(input.Tool, input.Output)
	if err != nil {
		return nil, err
	}

	clusters := cluster.Cluster(diagnostics)

	var text strings.Builder
	if len(clusters) == 0 {
		text.WriteString("No diagnostics found in the provided output.")
	} else {
		fmt.Fprintf(&text, "Found %d cluster(s) across %d diagnostic(s):\n\n", len(clusters), len(diagnostics))
		for _, c := range clusters {
			fmt.Fprintf(&text, "%s (%d instance(s))\n", c.ID, c.Size())
			fmt.Fprintf(&text, "   Pattern: %s\n", c.Pattern)
			fmt.Fprintf(&text, "   Representative: %s\n\n", c.Representative.String())
		}
	}

	return textResult(text.String()), nil
}

// handleSuggestFixes runs the planning stages and renders the proposed
// patches. Nothing is written to disk.
func (s *Server) handleSuggestFixes(ctx context.Context, input SuggestFixesInput) (map[string]any, error) {
	diagnostics, err := s.parseDiagnostics(input.Tool, input.Output)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg
	if input.SupportingDocs != "" {
		cfg.SupportingDocs = input.SupportingDocs
	}

	p := pipeline.New(cfg, rule.Global(), s.gen, s.log)
	plan := p.Plan(ctx, diagnostics)

	var text strings.Builder
	if len(plan.Outcomes) == 0 {
		text.WriteString("No diagnostics found in the provided output.")
		return textResult(text.String()), nil
	}

	fmt.Fprintf(&text, "Repair plan %s: %d cluster(s)\n\n", plan.RunID, len(plan.Outcomes))
	for _, o := range plan.Outcomes {
		switch o.Tier {
		case pipeline.TierPattern:
			fmt.Fprintf(&text, "%s: matched rule %s (%d patch(es))\n", o.Cluster.ID, o.RuleID, len(o.Patches))
		case pipeline.TierGenerated:
			fmt.Fprintf(&text, "%s: generated fix (%d patch(es))\n", o.Cluster.ID, len(o.Patches))
		default:
			fmt.Fprintf(&text, "%s: unresolved\n", o.Cluster.ID)
			if o.Err != nil {
				fmt.Fprintf(&text, "   generation error: %v\n", o.Err)
			}
		}
		for _, pt := range o.Patches {
			fmt.Fprintf(&text, "\n--- %s (%s)\n%s\n", pt.FilePath, pt.Description, strings.TrimRight(pt.Diff, "\n"))
		}
		text.WriteString("\n")
	}
	text.WriteString("Review the patches above and apply them with 'remedy patch apply' or your own tooling.")

	return textResult(text.String()), nil
}

// textResult wraps text in an MCP content response.
func textResult(text string) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
}
