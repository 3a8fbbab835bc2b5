package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qamus-labs/rootscan-cli/internal/buckwalter"
)

// LocateInput is the input schema for the locate_verses tool.
type LocateInput struct {
	Root string `json:"root" jsonschema:"the triliteral root, in Arabic script or Buckwalter transliteration"`
}

// LocateOutput is the output schema for the locate_verses tool.
type LocateOutput struct {
	Root   string        `json:"root"`
	Arabic string        `json:"arabic"`
	Verses []VerseOutput `json:"verses"`
	Count  int           `json:"count"`
}

// VerseOutput represents a single verse occurrence of a root.
type VerseOutput struct {
	Sura  int    `json:"sura"`
	Ayah  int    `json:"ayah"`
	Word  int    `json:"word"`
	Text  string `json:"text"`
	Token string `json:"token,omitempty"`
}

// FrequencyInput is the input schema for the root_frequency tool.
type FrequencyInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of roots to return (default 50, -1 for all)"`
}

// FrequencyOutput is the output schema for the root_frequency tool.
type FrequencyOutput struct {
	Roots []RootFrequencyOutput `json:"roots"`
	Count int                   `json:"count"`
}

// RootFrequencyOutput represents one root's aggregate statistics.
type RootFrequencyOutput struct {
	Root   string `json:"root"`
	Arabic string `json:"arabic"`
	Count  int    `json:"count"`
	Forms  string `json:"forms"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "locate_verses",
		Description: "Find every Quranic verse containing a triliteral root",
	}, s.handleLocate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "root_frequency",
		Description: "List triliteral roots of the Quran by occurrence count",
	}, s.handleFrequency)
}

// handleLocate handles the locate_verses tool invocation.
func (s *Server) handleLocate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LocateInput,
) (*mcp.CallToolResult, LocateOutput, error) {
	matches, err := s.ports.Locator.Locate(ctx, input.Root)
	if err != nil {
		return nil, LocateOutput{}, err
	}

	canonical := buckwalter.Normalise(input.Root)
	output := LocateOutput{
		Root:   canonical,
		Arabic: buckwalter.ToArabic(canonical),
		Verses: make([]VerseOutput, len(matches)),
		Count:  len(matches),
	}

	for i := range matches {
		token := ""
		if len(matches[i].Tokens) > 0 {
			token = matches[i].Tokens[0]
		}
		output.Verses[i] = VerseOutput{
			Sura:  matches[i].Ref.Sura,
			Ayah:  matches[i].Ref.Ayah,
			Word:  matches[i].Ref.Word,
			Text:  matches[i].Verse.Text,
			Token: token,
		}
	}

	return nil, output, nil
}

// handleFrequency handles the root_frequency tool invocation.
func (s *Server) handleFrequency(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FrequencyInput,
) (*mcp.CallToolResult, FrequencyOutput, error) {
	if s.ports.Frequency == nil {
		return nil, FrequencyOutput{}, ErrMissingFrequencyService
	}

	aggregates, _, err := s.ports.Frequency.Extract(ctx)
	if err != nil {
		return nil, FrequencyOutput{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = 50
	}
	if limit > 0 && len(aggregates) > limit {
		aggregates = aggregates[:limit]
	}

	output := FrequencyOutput{
		Roots: make([]RootFrequencyOutput, len(aggregates)),
		Count: len(aggregates),
	}
	for i := range aggregates {
		output.Roots[i] = RootFrequencyOutput{
			Root:   aggregates[i].Root,
			Arabic: buckwalter.ToArabic(aggregates[i].Root),
			Count:  aggregates[i].Count,
			Forms:  aggregates[i].FormsColumn(),
		}
	}

	return nil, output, nil
}
