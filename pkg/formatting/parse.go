// Package formatting parses loosely structured text into typed values:
// JSON payloads embedded in model replies and human-readable byte sizes
// from configuration.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content holds no parseable JSON, bare or
// fenced.
var ErrParseFailed = errors.New("failed to parse response")

var fencePattern = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse unmarshals content into T. Model replies often wrap JSON in a
// markdown code fence, so when the content as a whole is not valid JSON the
// first fenced block is tried before giving up.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if json.Unmarshal([]byte(content), &result) == nil {
		return result, nil
	}

	if fenced, ok := extractFence(content); ok {
		if json.Unmarshal([]byte(fenced), &result) == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}

func extractFence(content string) (string, bool) {
	matches := fencePattern.FindStringSubmatch(content)
	if len(matches) < 2 {
		return "", false
	}
	return strings.TrimSpace(matches[1]), true
}
