package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockGenerator is a deterministic offline stand-in for local development.
// It answers with a small markdown document quoting the start of the prompt.
type MockGenerator struct{}

func (MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	head := strings.Join(strings.Fields(prompt), " ")
	if r := []rune(head); len(r) > 200 {
		head = string(r[:200])
	}

	var sb strings.Builder
	sb.WriteString("# Mock output\n\n")
	fmt.Fprintf(&sb, "Prompt length: %d characters.\n\n", len(prompt))
	sb.WriteString("```\n")
	sb.WriteString(head)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
