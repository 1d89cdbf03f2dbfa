package model

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s\p{Zs}-]`)
	slugWhitespace   = regexp.MustCompile(`[\s\p{Zs}]+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// GenerateSlug tạo URL-friendly slug từ title
// "Re-Invent 2024!!" → "re-invent-2024"
func GenerateSlug(title string) string {
	// Step 1: Lowercase + trim
	s := strings.TrimSpace(strings.ToLower(title))

	// Step 2: Bỏ ký tự không phải word/space/hyphen
	s = slugInvalidChars.ReplaceAllString(s, "")

	// Step 3: Whitespace → single hyphen
	s = slugWhitespace.ReplaceAllString(s, "-")

	// Step 4: Collapse hyphens
	s = slugHyphens.ReplaceAllString(s, "-")

	// Step 5: Trim leading/trailing hyphens
	return strings.Trim(s, "-")
}

// NormalizeSlug áp dụng cho slug nhận từ URL trước khi lookup
func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
