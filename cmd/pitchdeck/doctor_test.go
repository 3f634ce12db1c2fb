package main

// Notes:
// - runDoctorCmd: we test exit codes and both output formats with a fake
//   Chrome lookup. The Chrome version probe runs a real binary only when one
//   is found, so tests point ROD_BROWSER_BIN at a missing path or none.
// - isContainer: we test the environment signals; /.dockerenv depends on the host.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Exit codes and output
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("chrome missing is an error", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, map[string]string{"GEMINI_API_KEY": "k"})
		if code := te.run("doctor"); code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}
		assertContains(t, "stdout", te.stdout.String(),
			"pitchdeck doctor", "[ERROR] Not found", "[OK] API key: set", "Status: Not ready")
	})

	t.Run("browser bin pointing nowhere", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, map[string]string{"ROD_BROWSER_BIN": "/nonexistent/chrome"})
		if code := te.run("doctor"); code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}
		assertContains(t, "stdout", te.stdout.String(), "Chrome not found at /nonexistent/chrome")
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, map[string]string{"PITCHDECK_PROVIDER": "openai", "CI": "true"})
		te.run("doctor", "--json")

		var got doctorResult
		if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
		}
		if got.Status != statusErrors {
			t.Errorf("Status = %q, want %q", got.Status, statusErrors)
		}
		if got.Generation.Provider != "openai" || got.Generation.APIKeySet {
			t.Errorf("Generation = %+v", got.Generation)
		}
		if !got.Env.CI {
			t.Error("CI not detected")
		}
		joined := strings.Join(got.Warnings, "\n")
		if !strings.Contains(joined, "OPENAI_API_KEY not set") || !strings.Contains(joined, "ROD_NO_SANDBOX") {
			t.Errorf("Warnings = %v", got.Warnings)
		}
	})

	t.Run("unknown provider flag", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil)
		te.run("doctor", "--provider", "claude")
		assertContains(t, "stdout", te.stdout.String(), `Unknown provider "claude"`)
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil)
		if code := te.run("doctor", "--bogus"); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCheckGeneration - API key warnings
// ---------------------------------------------------------------------------

func TestCheckGeneration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		vars         map[string]string
		provider     string
		wantSet      bool
		wantWarnings int
	}{
		{"gemini with key", map[string]string{"GEMINI_API_KEY": "k"}, "gemini", true, 0},
		{"default provider with API_KEY", map[string]string{"API_KEY": "k"}, "", true, 0},
		{"gemini without key", nil, "gemini", false, 1},
		{"openai with key", map[string]string{"OPENAI_API_KEY": "k"}, " OpenAI ", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, tt.vars)
			result := &doctorResult{}
			checkGeneration(result, te.Environment, tt.provider)

			if result.Generation.APIKeySet != tt.wantSet {
				t.Errorf("APIKeySet = %v, want %v", result.Generation.APIKeySet, tt.wantSet)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %v, want %d", result.Warnings, tt.wantWarnings)
			}
			if len(result.Errors) != 0 {
				t.Errorf("Errors = %v, want none", result.Errors)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsContainer - Container signals
// ---------------------------------------------------------------------------

func TestIsContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vars     map[string]string
		wantHint string
	}{
		{"explicit override", map[string]string{"PITCHDECK_CONTAINER": "1"}, "PITCHDECK_CONTAINER=1"},
		{"podman", map[string]string{"container": "podman"}, "container=podman"},
		{"kubernetes", map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, "KUBERNETES_SERVICE_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, tt.vars)
			got, hint := isContainer(te.Environment)
			if !got {
				t.Fatal("container not detected")
			}
			// /.dockerenv outranks the variable signals on Docker hosts.
			if hint != tt.wantHint && hint != "/.dockerenv" {
				t.Errorf("hint = %q, want %q", hint, tt.wantHint)
			}
		})
	}
}
