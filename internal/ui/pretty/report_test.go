package pretty_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/blocksel/internal/ui/pretty"
	"github.com/yaklabco/blocksel/pkg/blockerr"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structural",
			err:  &blockerr.StructuralError{Op: "next", ID: "b1"},
			want: "error: malformed document next: cycle in document tree: block \"b1\" visited twice\n",
		},
		{
			name: "precondition",
			err:  fmt.Errorf("select: %w", blockerr.Precondition("to-block-offset", blockerr.ReasonUnmounted, "b2")),
			want: "error: block is not mounted (select: to-block-offset: block is not mounted (block \"b2\"))\n",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "error: boom\n",
		},
		{
			name: "nil",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatError(tc.err))
		})
	}
}

func TestFormatWarnings(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatWarnings([]blockerr.AmbiguityWarning{
		{Op: "current-range", Message: "selection has 2 ranges; using the first"},
	})

	assert.Equal(t, "warning: current-range selection has 2 ranges; using the first\n", out)
	assert.Empty(t, styles.FormatWarnings(nil))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "No blocks selected\n", styles.FormatSummaryOneLine(0, 0))
	assert.Equal(t, "1 block selected\n", styles.FormatSummaryOneLine(1, 0))
	assert.Equal(t, "3 blocks selected, 1 warning\n", styles.FormatSummaryOneLine(3, 1))
	assert.Equal(t, "2 blocks selected, 2 warnings\n", styles.FormatSummaryOneLine(2, 2))
}

func TestFormatBuildSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name                               string
		documents, written, failed, blocks int
		want                               string
	}{
		{"nothing found", 0, 0, 0, 0, "No documents found\n"},
		{"one document", 1, 1, 0, 5, "Rendered 1 document (1 written), 5 blocks\n"},
		{"up to date", 3, 0, 0, 12, "Rendered 3 documents (0 written), 12 blocks\n"},
		{"with failures", 4, 2, 1, 1, "Rendered 3 documents (2 written), 1 block, 1 failed\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, styles.FormatBuildSummary(tc.documents, tc.written, tc.failed, tc.blocks))
		})
	}
}
