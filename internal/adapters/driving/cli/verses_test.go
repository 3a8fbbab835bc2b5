package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersesCmd_Use(t *testing.T) {
	assert.Equal(t, "verses [root]", versesCmd.Use)
}

func TestVersesCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"verses"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestVersesCmd_PrintsTable(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verses", "rHm"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Verses containing rHm (رحم): 2 occurrences")
	assert.Contains(t, buf.String(), "[1:1] بسم الله الرحمن الرحيم")
	assert.Contains(t, buf.String(), "word 3: الرحمن")
	assert.Contains(t, buf.String(), "[1:3] الرحمن الرحيم")
}

func TestVersesCmd_NoMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verses", "xyz"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No verses found for root xyz")
}

func TestVersesCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verses", "--json", "rHm"})
	defer func() {
		rootCmd.SetArgs(nil)
		versesJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"sura\": 1")
	assert.Contains(t, buf.String(), "\"ayah\": 3")
	assert.Contains(t, buf.String(), "\"text\"")
}

func TestVersesCmd_JSONOutput_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verses", "--json", "xyz"})
	defer func() {
		rootCmd.SetArgs(nil)
		versesJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[]")
}

func TestVersesCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	locatorService = &mockLocatorService{err: errors.New("verse 7:1 unresolved")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"verses", "rHm"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "locating verses")
}
