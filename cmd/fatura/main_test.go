package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDraft = `{
  "id": "1",
  "invoiceNumber": "42",
  "date": "2024-01-15",
  "dueDate": "2024-02-14",
  "clientName": "ACME",
  "items": [{"description": "Widget", "quantity": 3, "rate": 10}],
  "discount": 10,
  "tax": 18,
  "extraSections": [],
  "currency": "USD",
  "theme": "modern"
}`

func writeDraft(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDraft), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CLAMP_PERCENTAGES", "false")
	t.Setenv("LABELS_CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTotalsCommand(t *testing.T) {
	out, err := run(t, "totals", "-f", writeDraft(t))
	require.NoError(t, err)

	var got totalsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 30.0, got.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 31.86, got.Totals.Total, 1e-9)
	assert.Equal(t, "$31.86", got.Formatted["total"])
}

func TestTotalsRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := run(t, "totals", "-f", path)
	require.Error(t, err)
}

func TestRenderPrintCommand(t *testing.T) {
	out, err := run(t, "render", "-f", writeDraft(t), "--format", "print", "--lang", "en")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<html><head><title>Invoice</title>"))
	assert.Contains(t, out, "ACME")
	assert.Contains(t, out, "Bill To")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := run(t, "render", "-f", writeDraft(t), "--format", "docx")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
