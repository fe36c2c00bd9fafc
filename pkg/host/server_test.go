package host

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/lemonberrylabs/losp/pkg/values"
)

func postEval(t *testing.T, srv *Server, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/eval", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("decode response %q: %v", data, err)
		}
	}
	return resp.StatusCode, out
}

func TestHandleEvalReturnsValues(t *testing.T) {
	srv := New(nil)
	status, out := postEval(t, srv, map[string]any{"source": "(+ 1 2)"})
	if status != 200 {
		t.Fatalf("expected 200, got %d: %v", status, out)
	}
	values, _ := out["values"].([]any)
	if len(values) != 1 || values[0] != "3" {
		t.Fatalf("expected [\"3\"], got %v", out["values"])
	}
	if out["correlationId"] == "" || out["correlationId"] == nil {
		t.Fatalf("expected a correlation id, got %v", out["correlationId"])
	}
}

func TestHandleEvalRequiresSource(t *testing.T) {
	srv := New(nil)
	status, out := postEval(t, srv, map[string]any{"source": ""})
	if status != 400 {
		t.Fatalf("expected 400, got %d: %v", status, out)
	}
}

func TestHandleEvalReportsParseError(t *testing.T) {
	srv := New(nil)
	status, _ := postEval(t, srv, map[string]any{"source": "(+ 1"})
	if status != 400 {
		t.Fatalf("expected 400 for unterminated source, got %d", status)
	}
}

func TestHandleEvalAppliesServerGlobals(t *testing.T) {
	srv := New(map[string]values.Value{"greeting": values.NewString("hi")})
	status, out := postEval(t, srv, map[string]any{"source": "greeting"})
	if status != 200 {
		t.Fatalf("expected 200, got %d: %v", status, out)
	}
	got, _ := out["values"].([]any)
	if len(got) != 1 || got[0] != "hi" {
		t.Fatalf("expected [\"hi\"], got %v", out["values"])
	}
}

func TestHandleEvalAppliesRequestGlobals(t *testing.T) {
	srv := New(nil)
	status, out := postEval(t, srv, map[string]any{"source": "n", "globals": map[string]any{"n": 5.0}})
	if status != 200 {
		t.Fatalf("expected 200, got %d: %v", status, out)
	}
	got, _ := out["values"].([]any)
	if len(got) != 1 || got[0] != "5.0" {
		t.Fatalf("expected [\"5.0\"], got %v", out["values"])
	}
}

func TestHandleEvalRateLimitsAfterBurst(t *testing.T) {
	srv := New(nil)
	srv.limiter = newLimiterSet(0, 1) // a single token, never refilled
	status, _ := postEval(t, srv, map[string]any{"source": "1"})
	if status != 200 {
		t.Fatalf("expected the first request through, got %d", status)
	}
	status, _ = postEval(t, srv, map[string]any{"source": "1"})
	if status != 429 {
		t.Fatalf("expected the second request rate-limited, got %d", status)
	}
}
