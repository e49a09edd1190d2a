package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateScript(ctx context.Context, text string) (string, error) {
	return f.text, f.err
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "terminal punctuation",
			in:   "Hello world. How are you? Great!",
			want: []string{"Hello world.", "How are you?", "Great!"},
		},
		{
			name: "no boundary returns whole input",
			in:   "just one long sentence without terminal punctuation",
			want: []string{"just one long sentence without terminal punctuation"},
		},
		{
			name: "collapses whitespace",
			in:   "First.   \n Second.",
			want: []string{"First.", "Second."},
		},
		{
			name: "empty input",
			in:   "   ",
			want: nil,
		},
		{
			name: "trailing punctuation stays attached",
			in:   "One. Two.",
			want: []string{"One.", "Two."},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitSentences(c.in)
			if len(got) != len(c.want) {
				t.Fatalf("got %d sentences %v, want %d", len(got), got, len(c.want))
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestSplitSentences_Reconstruction(t *testing.T) {
	in := "The  quick brown fox. It jumped!   Then it ran?  Done."
	normalized := strings.Join(strings.Fields(in), " ")

	got := SplitSentences(in)
	if strings.Join(got, " ") != normalized {
		t.Fatalf("joined sentences %q do not reconstruct normalized input %q",
			strings.Join(got, " "), normalized)
	}
}

func TestSegment_DenseIndices(t *testing.T) {
	svc := NewService(&fakeGenerator{}, nil)

	script := entities.NewScript("A. B. C.", []string{"A.", "B.", "C."})
	segments := svc.Segment(script)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	for i, seg := range segments {
		if seg.Index != i {
			t.Errorf("segment %d has index %d, want dense 0-based", i, seg.Index)
		}
		if seg.Text == "" {
			t.Errorf("segment %d has empty text", i)
		}
	}
}

func TestSegment_StructuredFormTakesPrecedence(t *testing.T) {
	svc := NewService(&fakeGenerator{}, nil)

	script := &entities.Script{
		OriginalText: "Totally different. Text here.",
		Sentences:    []string{"From the list."},
	}
	segments := svc.Segment(script)

	if len(segments) != 1 || segments[0].Text != "From the list." {
		t.Fatalf("structured sentences must win, got %v", segments)
	}
}

func TestSegment_FallsBackToHeuristicSplit(t *testing.T) {
	svc := NewService(&fakeGenerator{}, nil)

	script := &entities.Script{
		OriginalText: "First thing. Second thing.",
		Sentences:    []string{"  ", ""},
	}
	segments := svc.Segment(script)

	if len(segments) != 2 {
		t.Fatalf("expected heuristic fallback to yield 2 segments, got %v", segments)
	}
}

func TestGenerate_CollaboratorError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("upstream down")}, nil)

	if _, err := svc.Generate(context.Background(), "topic"); err == nil {
		t.Fatalf("expected error when generation collaborator fails")
	}
}

func TestGenerate_EmptyScriptIsError(t *testing.T) {
	svc := NewService(&fakeGenerator{text: "  \n "}, nil)

	if _, err := svc.Generate(context.Background(), "topic"); err == nil {
		t.Fatalf("expected error for empty generated script")
	}
}

func TestGenerate_Success(t *testing.T) {
	svc := NewService(&fakeGenerator{text: "Hello world. Goodbye."}, nil)

	script, err := svc.Generate(context.Background(), "greeting")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if script.SentenceCount != 2 {
		t.Fatalf("expected 2 sentences, got %d", script.SentenceCount)
	}
	if script.OriginalText != "Hello world. Goodbye." {
		t.Fatalf("original text must be preserved")
	}
}
