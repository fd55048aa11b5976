package errors

import (
	"regexp"
	"unicode"
)

// maxIdentifierLength bounds labels, relationship types and property keys.
const maxIdentifierLength = 256

// ValidateIdentifier checks a label, relationship type or property key before
// it is interpolated into a source query.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No backticks, quotes or semicolons
//   - Maximum length of 256 characters
//
// kind names the identifier in error messages ("label", "property key", ...).
func ValidateIdentifier(kind string, name string, code Code) error {
	if name == "" {
		return New(code, "%s cannot be empty", kind)
	}

	if len(name) > maxIdentifierLength {
		return New(code, "%s too long (max %d characters)", kind, maxIdentifierLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", kind)
		}
		switch r {
		case '`', '"', '\'', ';', '\\':
			return New(code, "%s contains invalid character: %q", kind, r)
		}
	}

	return nil
}

// identifierRegex matches plain identifiers that need no quoting.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsPlainIdentifier reports whether name can be used unquoted in a query.
func IsPlainIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

// ValidateLabel validates a node label or relationship type.
func ValidateLabel(name string) error {
	return ValidateIdentifier("label", name, ErrCodeInvalidLabel)
}

// ValidatePropertyKey validates a property key.
func ValidatePropertyKey(name string) error {
	return ValidateIdentifier("property key", name, ErrCodeInvalidProperty)
}
