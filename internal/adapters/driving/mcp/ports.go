package mcp

import (
	"github.com/qamus-labs/rootscan-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Locator finds the verses a root occurs in.
	Locator driving.LocatorService

	// Frequency produces root frequency statistics.
	Frequency driving.FrequencyService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Locator == nil {
		return ErrMissingLocatorService
	}
	// Frequency is optional; the root_frequency tool reports its absence
	return nil
}
