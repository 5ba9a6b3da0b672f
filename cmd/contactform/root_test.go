package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

const testConfig = `contact:
  email: hello@example.com
  phone: "+1 555 0100"
  phone_href: "tel:+15550100"
  location: Lisbon
delivery:
  delay: 0s
log:
  level: error
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contactform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func execute(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(c)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRender_DefaultsToIdleForm(t *testing.T) {
	out, err := execute(t, newCLI(), "render")
	require.NoError(t, err)

	assert.Contains(t, out, `name="email"`)
	assert.Contains(t, out, "Send Message")
	assert.Contains(t, out, "hello@example.com")
	assert.NotContains(t, out, "contact-status--")
}

func TestRender_SubmitInvalidShowsErrors(t *testing.T) {
	out, err := execute(t, newCLI(), "render", "--email", "nope", "--submit")
	require.NoError(t, err)

	assert.Contains(t, out, `aria-invalid="true"`)
	assert.Contains(t, out, "Name is required")
	assert.Contains(t, out, "Please enter a valid email address")
	assert.Contains(t, out, "Message is required")
}

func TestRender_SubmitValidShowsConfirmation(t *testing.T) {
	out, err := execute(t, newCLI(), "render",
		"--name", "Ada",
		"--email", "ada@example.com",
		"--message", "Hello there, nice portfolio.",
		"--submit",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "contact-status--succeeded")
	assert.Contains(t, out, "Message sent successfully to ada@example.com!")
	assert.NotContains(t, out, `aria-invalid="true"`)
}

func TestRender_WritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.html")

	out, err := execute(t, newCLI(), "render", "--variant", "dark", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "Form written to "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "contact.dark.css")
}

func TestRender_UnknownTheme(t *testing.T) {
	_, err := execute(t, newCLI(), "render", "--theme", "missing")
	require.Error(t, err)
}

func TestCopyEmail_Acknowledges(t *testing.T) {
	var copied string
	c := newCLI()
	c.clipboardWriter = func(text string) error {
		copied = text
		return nil
	}

	out, err := execute(t, c, "copy-email")
	require.NoError(t, err)
	assert.Equal(t, "hello@example.com", copied)
	assert.Equal(t, "Copied hello@example.com to clipboard!\n", out)
}

func TestCopyEmail_Failure(t *testing.T) {
	c := newCLI()
	c.clipboardWriter = func(string) error { return errors.New("no display") }

	out, err := execute(t, c, "copy-email")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestSchema_PrintsFormModel(t *testing.T) {
	out, err := execute(t, newCLI(), "schema")
	require.NoError(t, err)

	var spec model.FormModel
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "sendContactMessage", spec.OperationID)
	assert.Len(t, spec.Fields, 3)
}

func TestLint_EmbeddedDocument(t *testing.T) {
	out, err := execute(t, newCLI(), "lint")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLint_ReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.yaml")
	doc := `openapi: 3.0.3
info:
  title: lint
  version: 1.0.0
paths:
  /contact:
    post:
      operationId: sendContactMessage
      x-formgen-label: Misplaced
      responses:
        '202':
          description: ok
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := execute(t, newCLI(), "lint", path)
	require.Error(t, err)
	assert.Equal(t, path+": operation > sendContactMessage -> \"label\" only applies to contact fields\n", out)
}

func TestPrompt_AbortIsNotAnError(t *testing.T) {
	c := newCLI()
	c.promptDriver = abortingDriver{}

	_, err := execute(t, c, "prompt")
	require.NoError(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contact:\n  email: not-an-email\n"), 0o600))

	cmd := newRootCommand(newCLI())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "schema"})
	require.Error(t, cmd.Execute())
}

type abortingDriver struct{}

func (abortingDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", tui.ErrAborted
}

func (abortingDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, tui.ErrAborted
}

func (abortingDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return -1, tui.ErrAborted
}

func (abortingDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", tui.ErrAborted
}

func (abortingDriver) Info(context.Context, string) error {
	return nil
}
