package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs.
// Uses github.com/RealAlexandreAI/json-repair for intelligent repair:
// missing quotes, single quotes, trailing commas, unclosed objects, comments.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (Hjson) and returns standard JSON.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(hjsonData), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(jsonBytes), nil
}

// ExtractObject isolates the outermost {...} span of s after stripping a code fence.
// It returns false when s holds no object at all.
func ExtractObject(s string) (string, bool) {
	s = StripCodeFence(s)
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		// unterminated object, leave it to the repair pass
		return s[start:], true
	}
	return s[start : end+1], true
}

// SmartParse decodes an LLM response that is supposed to contain a single JSON object into out.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
func SmartParse(input string, out interface{}) error {
	candidate, ok := ExtractObject(input)
	if !ok {
		return fmt.Errorf("SMART_PARSE_FAILED: no JSON object in response")
	}

	if err := json.Unmarshal([]byte(candidate), out); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(candidate); err == nil {
		if err := json.Unmarshal([]byte(repaired), out); err == nil {
			return nil
		}
	}

	if converted, err := ParseHJSON(candidate); err == nil {
		if err := json.Unmarshal([]byte(converted), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed for input")
}
