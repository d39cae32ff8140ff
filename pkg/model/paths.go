package model

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/arowla/django-versions/pkg/model/status"
)

// RepositoryName resolves the configured repository routing a record
// kind. It is a pure function of the registered options and never
// performs I/O.
func RepositoryName(kind string) string {
	return OptionsFor(kind).Repository
}

// ItemPath derives the stable key identifying one record's history slot
// within its repository. The mapping depends only on the record's kind
// and primary identity, so it remains stable across the record's
// lifetime.
func ItemPath(kind, key string) string {
	return path.Join(strings.ToLower(kind), key)
}

// ValidateKind checks that a record kind only contains letters, digits,
// hyphens and path separators.
func ValidateKind(kind string) error {
	if kind == "" {
		return status.ErrInvalidKind.Wrap(fmt.Errorf("empty field: record kind is empty"))
	}
	for _, c := range kind {
		if !unicode.IsDigit(c) && !unicode.IsLetter(c) && !unicode.Is(unicode.Hyphen, c) && c != '/' && c != '_' {
			return status.ErrInvalidKind.Wrap(
				fmt.Errorf("invalid name: record kind %s contains unsupported character %q", kind, c))
		}
	}
	return nil
}
