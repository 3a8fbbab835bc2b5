// Package mcp provides an MCP (Model Context Protocol) server adapter for
// rootscan. It lets AI assistants query the Quranic root corpus directly:
// locating the verses a root occurs in and reading frequency statistics.
package mcp

import "errors"

// ErrMissingLocatorService is returned when the locator service is not provided.
var ErrMissingLocatorService = errors.New("mcp: locator service is required")

// ErrMissingFrequencyService is returned when a frequency tool is invoked
// without a frequency service configured.
var ErrMissingFrequencyService = errors.New("mcp: frequency service is not configured")
