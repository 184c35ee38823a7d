package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Convention selects how ApplyNaming rewrites an identifier.
type Convention int

const (
	// None leaves the identifier unchanged (apart from the leading underscore).
	None Convention = iota
	// FileName produces lower, underscore separated names: "PetStore" -> "pet_store".
	FileName
	// Field produces lower camel case names: "pet_store" -> "petStore".
	Field
	// Class produces upper camel case names: "pet_store" -> "PetStore".
	Class
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case FileName:
		return "file-name"
	case Field:
		return "field"
	case Class:
		return "class"
	default:
		return "none"
	}
}

// ApplyNaming strips one leading underscore from identifier and then
// applies the given convention.
func ApplyNaming(identifier string, convention Convention) string {
	name := strings.TrimPrefix(identifier, "_")

	switch convention {
	case FileName:
		return inflect.Underscore(name)
	case Field:
		return ToCamelCase(name)
	case Class:
		return ToPascalCase(name)
	default:
		return name
	}
}

// Singularize returns the singular form of an English word: "addresses" -> "address".
func Singularize(word string) string {
	return inflect.Singularize(word)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r)
}

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) start a new word; the
// first letter of every word is upper-cased and the rest is kept as is.
// Example: "user_profile" -> "UserProfile"
// Example: "userProfile" -> "UserProfile"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	caser := cases.Title(language.English, cases.NoLower)
	var result strings.Builder
	for _, word := range strings.FieldsFunc(s, isSeparator) {
		result.WriteString(caser.String(word))
	}
	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToTitleCase converts the first letter to uppercase.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
