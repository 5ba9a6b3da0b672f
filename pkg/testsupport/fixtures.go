// Package testsupport holds fixtures shared by package tests: golden file
// helpers and a recording deliverer.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/delivery"
	"github.com/goliatone/go-contactform/pkg/model"
)

// UpdateGoldensEnv enables golden rewrites when set.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// MustLoadFormModel loads a JSON golden file into a FormModel.
func MustLoadFormModel(t *testing.T, path string) model.FormModel {
	t.Helper()

	form, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return form
}

// LoadFormModel reads a JSON fixture into a FormModel.
func LoadFormModel(path string) (model.FormModel, error) {
	if path == "" {
		return model.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out model.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set and
// reports whether it did.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv(UpdateGoldensEnv) == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// RecordingDeliverer records every message it receives. Attempt n returns the
// n-th scripted error, or nil once the script runs out.
type RecordingDeliverer struct {
	mu       sync.Mutex
	script   []error
	messages []delivery.Message
}

var _ delivery.Deliverer = (*RecordingDeliverer)(nil)

// NewRecordingDeliverer returns a deliverer answering with script in order.
func NewRecordingDeliverer(script ...error) *RecordingDeliverer {
	return &RecordingDeliverer{script: script}
}

func (r *RecordingDeliverer) Deliver(ctx context.Context, msg delivery.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	attempt := len(r.messages)
	r.messages = append(r.messages, msg)
	if attempt < len(r.script) {
		return r.script[attempt]
	}
	return nil
}

// Messages returns a copy of the recorded messages.
func (r *RecordingDeliverer) Messages() []delivery.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery.Message(nil), r.messages...)
}
