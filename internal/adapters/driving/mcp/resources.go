package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qamus-labs/rootscan-cli/internal/buckwalter"
)

const (
	// uriScheme is the custom URI scheme for rootscan resources.
	uriScheme = "rootscan://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the full frequency table.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "roots",
		Name:        "roots",
		Description: "Frequency table of every triliteral root in the corpus",
		MIMEType:    "application/json",
	}, s.handleRootsResource)

	// Template for the verses a root occurs in.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "roots/{root}/verses",
		Name:        "root-verses",
		Description: "Verses containing a specific triliteral root",
		MIMEType:    "application/json",
	}, s.handleVersesResource)
}

// handleRootsResource returns the root frequency table.
func (s *Server) handleRootsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Frequency == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	aggregates, _, err := s.ports.Frequency.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extracting root frequencies: %w", err)
	}

	infos := make([]RootFrequencyOutput, len(aggregates))
	for i := range aggregates {
		infos[i] = RootFrequencyOutput{
			Root:   aggregates[i].Root,
			Arabic: buckwalter.ToArabic(aggregates[i].Root),
			Count:  aggregates[i].Count,
			Forms:  aggregates[i].FormsColumn(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling roots: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleVersesResource returns the verses containing a specific root.
func (s *Server) handleVersesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract the root from URI: rootscan://roots/{root}/verses
	root := extractRoot(req.Params.URI)
	if root == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	matches, err := s.ports.Locator.Locate(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("locating verses: %w", err)
	}

	infos := make([]VerseOutput, len(matches))
	for i := range matches {
		token := ""
		if len(matches[i].Tokens) > 0 {
			token = matches[i].Tokens[0]
		}
		infos[i] = VerseOutput{
			Sura:  matches[i].Ref.Sura,
			Ayah:  matches[i].Ref.Ayah,
			Word:  matches[i].Ref.Word,
			Text:  matches[i].Verse.Text,
			Token: token,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling verses: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRoot extracts the root from a URI like rootscan://roots/{root}/verses.
func extractRoot(uri string) string {
	const prefix = uriScheme + "roots/"
	const suffix = "/verses"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
