// Package storage defines sentinel errors and context helpers shared by
// TranslationStore implementations.
package storage
