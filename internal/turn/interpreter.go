package turn

import (
	"strings"

	"virginia-ai/backend/internal/llm"
	"virginia-ai/backend/internal/model"
)

// Result is the decomposition of one raw model reply.
type Result struct {
	Answer    string
	Citations []string
}

// Interpreter splits a raw model reply into answer text and a citation list.
// It is an interface so the deliberately loose line-per-source grammar can be
// swapped for a stricter structured format without touching the assembler or
// the chat service.
type Interpreter interface {
	Interpret(raw string) Result
}

// markerInterpreter implements the fixed textual protocol: an optional
// single SourcesMarker separates the answer from the citation lines.
type markerInterpreter struct{}

func NewMarkerInterpreter() Interpreter {
	return markerInterpreter{}
}

// Interpret returns the trimmed text before the marker as the answer and one
// citation per non-empty line after it, with a leading "-" or "*" bullet
// stripped. Citation lines are otherwise passed through unvalidated. Without
// the marker the whole text is the answer and the citation list is empty.
func (markerInterpreter) Interpret(raw string) Result {
	before, after, found := strings.Cut(raw, SourcesMarker)
	if !found {
		return Result{Answer: raw, Citations: []string{}}
	}

	citations := []string{}
	for _, line := range strings.Split(after, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		citations = append(citations, stripBullet(line))
	}

	return Result{Answer: strings.TrimSpace(before), Citations: citations}
}

func stripBullet(line string) string {
	rest, ok := strings.CutPrefix(line, "-")
	if !ok {
		rest, ok = strings.CutPrefix(line, "*")
	}
	if !ok {
		return line
	}
	return strings.TrimLeft(rest, " \t")
}

// UsageFromMetadata copies the gateway's token counters into the domain
// shape. Missing metadata yields all zeros; reported values are trusted
// verbatim with no range or consistency checks.
func UsageFromMetadata(md *llm.UsageMetadata) model.TokenUsage {
	if md == nil {
		return model.TokenUsage{}
	}
	return model.TokenUsage{
		PromptTokens:   md.PromptTokenCount,
		ResponseTokens: md.CandidatesTokenCount,
		TotalTokens:    md.TotalTokenCount,
	}
}
