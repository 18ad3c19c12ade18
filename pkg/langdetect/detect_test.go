package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/blocksel/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		snippet string
		want    string
	}{
		{"empty", "", langdetect.Unknown},
		{"whitespace only", "  \n\t\n", langdetect.Unknown},
		{"env bash shebang", "#!/usr/bin/env bash\nls -la\n", "bash"},
		{"python shebang", "#!/usr/bin/env python3\nprint(1)\n", "python"},
		{"go package clause", "package blocks\n\nvar _ = 1\n", "go"},
		{"python from import", "from os import path\n", "python"},
		{"python main guard", "if __name__ == '__main__':\n    run()\n", "python"},
		{"html doctype", "<!DOCTYPE html>\n<p>block</p>\n", "html"},
		{"json array", `["page", "frame", "paragraph"]`, "json"},
		{"dockerfile", "FROM golang:1.25\nRUN go build ./...\n", "dockerfile"},
		{"dockerfile without from", "WORKDIR /src\nCOPY . .\n", "dockerfile"},
		{"lowercase sql", "select id from blocks where flavour = 'code';", "sql"},
		{"rust", "fn main() {\n    println!(\"hi\");\n}\n", "rust"},
		{"javascript arrow", "const ids = blocks.map(b => b.id);\n", "javascript"},
		{"yaml mapping", "marker_attribute: data-block-id\nlevel: info\n", "yaml"},
		{"yaml list", "# flavours\n- page\n- frame\n", "yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, langdetect.Detect([]byte(tc.snippet)))
		})
	}
}

func TestDetect_ShebangBeatsRules(t *testing.T) {
	t.Parallel()

	// The body reads as JavaScript, the shebang says Python.
	snippet := "#!/usr/bin/python\nconst = lambda: 1 => 2\n"
	assert.Equal(t, "python", langdetect.Detect([]byte(snippet)))
}
