package llm

import (
	"encoding/json"
	"strings"
)

// maxPromptTextLen caps how much extracted document text goes into the
// prompt; VOB faxes rarely exceed a few pages of text.
const maxPromptTextLen = 12000

// BuildSystemPrompt composes the fixed instructional prompt, including the
// full target JSON schema inline.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a dental insurance verification assistant. You read the text of a",
		"Verification of Benefits (VOB) or Breakdown of Benefits document and return",
		"ONLY JSON that matches the provided JSON Schema. No prose, no Markdown.",
		"Copy values exactly as they appear in the document.",
		"Currency amounts keep digits and thousands separators only (e.g. \"1,500\"), no currency symbol.",
		"Coverage percentages are rendered like \"80%\".",
		"Dates keep the document's own format.",
		"Never output null. If a field is not present in the document, omit it.",
		"JSON Schema:",
		mustJSON(BuildBenefitsJSONSchema()),
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the extracted document text, truncated to a size
// the completion API handles comfortably.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if name := strings.TrimSpace(req.FilenameHint); name != "" {
		b.WriteString("Filename: ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	text := strings.TrimSpace(req.RawText)
	b.WriteString("\nDocument text:\n")
	if len(text) > maxPromptTextLen {
		b.WriteString(text[:maxPromptTextLen])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
