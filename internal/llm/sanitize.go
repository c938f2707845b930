package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/dentalops/vob-extractor/internal/vob"
)

// StripCodeFences removes a Markdown code-fence wrapper (``` or ```json)
// from a model response, returning the inner text unchanged otherwise.
func StripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.Index(t, "\n"); i >= 0 {
		// drop the language tag line ("json", "JSON", ...)
		t = t[i+1:]
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// NormalizeRecordJSON
// - Drops unknown sections and fields (additionalProperties = false friendliness)
// - Drops null/empty leaves
// - Coerces numeric leaves to strings
func NormalizeRecordJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string
	out := map[string]any{}
	for name, val := range doc {
		fields, known := sectionFields[name]
		if !known {
			dropped = append(dropped, name+"(unknown section)")
			continue
		}
		sec, ok := val.(map[string]any)
		if !ok {
			dropped = append(dropped, name+"(not an object)")
			continue
		}
		cleaned := map[string]any{}
		for _, f := range fields {
			v, present := sec[f]
			if !present {
				continue
			}
			switch t := v.(type) {
			case string:
				s := strings.TrimSpace(t)
				if s == "" {
					dropped = append(dropped, name+"."+f+"(empty)")
					continue
				}
				cleaned[f] = s
			case float64:
				cleaned[f] = strconv.FormatFloat(t, 'f', -1, 64)
			case nil:
				dropped = append(dropped, name+"."+f+"(null)")
			default:
				dropped = append(dropped, name+"."+f+"(type)")
			}
		}
		for f := range sec {
			if !containsField(fields, f) {
				dropped = append(dropped, name+"."+f+"(unknown)")
			}
		}
		if len(cleaned) > 0 {
			out[name] = cleaned
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return b, dropped, nil
}

// DecodeRecord turns a raw model response into a BenefitsRecord: strip code
// fences, parse (with a json-repair second chance), sanitize to the known
// shape, validate against the schema, unmarshal.
func DecodeRecord(raw []byte, logger *slog.Logger) (*vob.BenefitsRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	content := StripCodeFences(string(raw))

	cleaned, _, err := NormalizeRecordJSON([]byte(content), logger)
	if err != nil {
		repaired, rErr := jsonrepair.RepairJSON(content)
		if rErr != nil {
			return nil, fmt.Errorf("parse model response: %w", err)
		}
		logger.Warn("llm.extract.json_repaired", "original_bytes", len(content))
		cleaned, _, err = NormalizeRecordJSON([]byte(repaired), logger)
		if err != nil {
			return nil, fmt.Errorf("parse repaired model response: %w", err)
		}
	}

	if err := ValidateJSONAgainstSchema(BuildBenefitsJSONSchema(), cleaned); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var rec vob.BenefitsRecord
	if err := json.Unmarshal(cleaned, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}

func containsField(fields []string, f string) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}
