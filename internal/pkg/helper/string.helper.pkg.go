package helper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func StringToStruct[I any](payload string) (result *I, err error) {
	err = json.Unmarshal([]byte(payload), &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func StringToInt(payload string) (int, error) {
	result, err := strconv.Atoi(payload)
	if err != nil {
		return 0, err
	}

	return result, nil
}

// OnlyDigits drops every rune that is not 0-9.
func OnlyDigits(payload string) string {
	var sb strings.Builder
	sb.Grow(len(payload))
	for _, r := range payload {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// MaskDocument keeps the last four digits of a document number.
func MaskDocument(document string) string {
	digits := OnlyDigits(document)
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func GetMapStringValue(header map[string]any, key string) *string {
	str := ""
	value, exists := header[key]
	if !exists || value == nil {
		return &str
	}
	str = fmt.Sprintf("%v", value)
	return &str
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func ParseCommaSeperatedString(data string) []string {
	var stringsList []string
	if data == "" {
		return stringsList
	}

	parts := strings.Split(data, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		stringsList = append(stringsList, part)
	}

	return stringsList
}

// TitleCase upper-cases the first letter of each word.
func TitleCase(payload string) string {
	words := strings.Fields(strings.ToLower(payload))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
