package validation

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Limits bounds a single embed request. Zero values disable the
// corresponding check.
type Limits struct {
	MaxBatchSize  int
	MaxTextLength int
}

// ValidateTexts decodes and validates the raw "texts" value of an embed
// request. It returns the decoded strings, or a client-facing error message
// describing the first problem found.
func ValidateTexts(raw json.RawMessage, limits Limits) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("'texts' is required and must be a list of strings")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("'texts' must be a list of strings")
	}

	if limits.MaxBatchSize > 0 && len(elements) > limits.MaxBatchSize {
		return nil, fmt.Errorf("'texts' exceeds maximum batch size of %d", limits.MaxBatchSize)
	}

	texts := make([]string, len(elements))
	for i, el := range elements {
		var s string
		if err := json.Unmarshal(el, &s); err != nil {
			return nil, fmt.Errorf("'texts[%d]' must be a string", i)
		}
		if limits.MaxTextLength > 0 && utf8.RuneCountInString(s) > limits.MaxTextLength {
			return nil, fmt.Errorf("'texts[%d]' exceeds maximum length of %d characters", i, limits.MaxTextLength)
		}
		texts[i] = s
	}

	return texts, nil
}
