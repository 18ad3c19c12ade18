package pretty

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/blocksel/pkg/blockerr"
)

// FormatError renders err for the terminal, naming the failure class of
// structural and precondition errors.
func (s *Styles) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var structural *blockerr.StructuralError
	if errors.As(err, &structural) {
		return fmt.Sprintf("%s %s %s\n",
			s.Error.Render("error:"),
			s.Reason.Render("malformed document"),
			err.Error(),
		)
	}

	var precondition *blockerr.PreconditionError
	if errors.As(err, &precondition) {
		return fmt.Sprintf("%s %s %s\n",
			s.Error.Render("error:"),
			s.Reason.Render(precondition.Reason.String()),
			s.Dim.Render("("+err.Error()+")"),
		)
	}

	return s.Error.Render("error:") + " " + err.Error() + "\n"
}

// FormatWarnings renders ambiguity warnings one per line.
func (s *Styles) FormatWarnings(warnings []blockerr.AmbiguityWarning) string {
	var builder strings.Builder
	for _, w := range warnings {
		builder.WriteString(s.Warning.Render("warning:"))
		builder.WriteString(" ")
		builder.WriteString(s.Operator.Render(w.Op))
		builder.WriteString(" ")
		builder.WriteString(w.Message)
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatSummaryOneLine formats a selection result as a single line.
// Example: "3 blocks selected, 1 warning".
func (s *Styles) FormatSummaryOneLine(blocks, warnings int) string {
	if blocks == 0 {
		return s.Warning.Render("No blocks selected") + "\n"
	}

	parts := []string{s.Success.Render(plural(blocks, "block") + " selected")}
	if warnings > 0 {
		parts = append(parts, s.Warning.Render(plural(warnings, "warning")))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatBuildSummary formats a batch render result as a single line.
// Example: "Rendered 4 documents (3 written), 52 blocks, 1 failed".
func (s *Styles) FormatBuildSummary(documents, written, failed, blocks int) string {
	if documents == 0 {
		return s.Warning.Render("No documents found") + "\n"
	}

	ok := documents - failed
	parts := []string{
		s.Success.Render(fmt.Sprintf("Rendered %s (%d written)", plural(ok, "document"), written)),
		plural(blocks, "block"),
	}
	if failed > 0 {
		parts = append(parts, s.Error.Render(strconv.Itoa(failed)+" failed"))
	}
	return strings.Join(parts, ", ") + "\n"
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
