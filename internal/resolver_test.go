package internal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeSource is a scriptable ResponseSource for resolver tests
type fakeSource struct {
	resp  *Response
	err   error
	calls int
}

func (f *fakeSource) Answer(_ context.Context, _, _ string, _ *Location) (*Response, error) {
	f.calls++
	return f.resp, f.err
}

func noDelay(_ context.Context) error { return nil }

func TestResolverPrimarySuccess(t *testing.T) {
	primary := &fakeSource{resp: &Response{Answer: "from backend", Confidence: 0.99}}
	substitute := &fakeSource{resp: &Response{Answer: "canned"}}

	r := NewResolver(primary, substitute)
	r.delay = noDelay

	resp, err := r.Resolve(context.Background(), "query", "s1", nil)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if resp.Answer != "from backend" {
		t.Errorf("answer = %q, want primary's", resp.Answer)
	}
	if substitute.calls != 0 {
		t.Error("substitute should not be consulted when the primary succeeds")
	}
}

func TestResolverFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeSource{err: errors.New("connection refused")}
	substitute := &fakeSource{resp: &Response{Answer: "canned", Confidence: 0.75}}

	r := NewResolver(primary, substitute)
	r.delay = noDelay

	resp, err := r.Resolve(context.Background(), "query", "s1", nil)
	if err != nil {
		t.Fatalf("Resolve() must never surface the primary's error, got: %v", err)
	}
	if resp.Answer != "canned" {
		t.Errorf("answer = %q, want substitute's", resp.Answer)
	}
	if substitute.calls != 1 {
		t.Errorf("substitute calls = %d, want 1", substitute.calls)
	}
}

func TestResolverCancelledDuringDelay(t *testing.T) {
	primary := &fakeSource{err: errors.New("down")}
	substitute := &fakeSource{resp: &Response{Answer: "canned"}}

	r := NewResolver(primary, substitute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "query", "s1", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if substitute.calls != 0 {
		t.Error("substitute should not run after cancellation")
	}
}

func TestSubstituteKeywordMatch(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantConfidence float64
		wantContains   string
		wantEntities   bool
	}{
		{
			name:           "insat keyword, mixed case",
			query:          "Tell me about INSAT-3D imaging",
			wantConfidence: 0.92,
			wantContains:   "INSAT-3D",
			wantEntities:   true,
		},
		{
			name:           "oceansat keyword",
			query:          "what does oceansat measure?",
			wantConfidence: 0.9,
			wantContains:   "Oceansat-2",
			wantEntities:   true,
		},
		{
			name:           "cyclone keyword",
			query:          "current cyclone warnings",
			wantConfidence: 0.88,
			wantContains:   "cyclone",
			wantEntities:   true,
		},
		{
			name:           "no keyword falls to generic answer",
			query:          "how do I reset my password",
			wantConfidence: 0.75,
			wantContains:   "MOSDAC",
			wantEntities:   false,
		},
	}

	substitute := NewSubstitute()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := substitute.Answer(context.Background(), tt.query, "s1", nil)
			if err != nil {
				t.Fatalf("Answer() failed: %v", err)
			}
			if resp.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", resp.Confidence, tt.wantConfidence)
			}
			if !strings.Contains(resp.Answer, tt.wantContains) {
				t.Errorf("answer %q should contain %q", resp.Answer, tt.wantContains)
			}
			if tt.wantEntities && len(resp.Entities) == 0 {
				t.Error("keyword match should carry entities")
			}
			if !tt.wantEntities && len(resp.Entities) != 0 {
				t.Error("generic answer should carry no entities")
			}
		})
	}
}

func TestSubstituteIsDeterministic(t *testing.T) {
	substitute := NewSubstitute()

	first, err := substitute.Answer(context.Background(), "insat products", "s1", nil)
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}
	second, err := substitute.Answer(context.Background(), "insat products", "s2", nil)
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}

	if first.Answer != second.Answer || first.Confidence != second.Confidence {
		t.Error("substitute must answer identical queries identically")
	}
}
