package datastore

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	KeyDelimiter               = ":"  // Standard Redis delimiter.
	ReservedNamespaceDelimiter = "__" // Placed before and after each namespace.
	WildcardAnyString          = "*"  // Matches zero or more characters.
	keyMaxLength               = 1024 // Practical limit (avoid large keys).
)

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9:_\-./,()]+$`) // Allowed key characters.

type InvalidKeyError string

func (e InvalidKeyError) Error() string { return "datastore: invalid key: " + string(e) }

// ValidateKey validates a key or key name.
func ValidateKey(key string) error {
	if key == "" {
		return InvalidKeyError("key must not be empty")
	}
	if len(key) > keyMaxLength {
		return InvalidKeyError(fmt.Sprintf("key '%s' exceeds %d characters", key, keyMaxLength))
	}
	if !keyRegex.MatchString(key) {
		return InvalidKeyError(fmt.Sprintf("key '%s' contains invalid characters", key))
	}
	if strings.HasPrefix(key, KeyDelimiter) || strings.HasSuffix(key, KeyDelimiter) {
		return InvalidKeyError(fmt.Sprintf("key '%s' must not start or end with '%s'", key, KeyDelimiter))
	}
	return nil
}

func keyNamespace(ns string) string {
	if ns == "" {
		return ""
	}
	return ReservedNamespaceDelimiter + strings.ToLower(ns) + ReservedNamespaceDelimiter
}

// NewKey returns the Redis key for name within the optional namespace.
//
// Key structure:
//
//	<__namespace__>:<name>
func NewKey(namespace, name string) (string, error) {
	if strings.HasPrefix(name, ReservedNamespaceDelimiter) {
		return "", InvalidKeyError(fmt.Sprintf(
			"name '%s' must not start with reserved namespace delimiter '%s'", name, ReservedNamespaceDelimiter,
		))
	}
	if err := ValidateKey(name); err != nil {
		return "", err
	}
	if namespace == "" {
		return name, nil
	}
	if err := ValidateNamespace(namespace); err != nil {
		return "", err
	}
	return keyNamespace(namespace) + KeyDelimiter + name, nil
}

// ValidateNamespace validates a key namespace.
func ValidateNamespace(namespace string) error {
	if strings.Contains(namespace, KeyDelimiter) || strings.Contains(namespace, ReservedNamespaceDelimiter) {
		return InvalidKeyError(fmt.Sprintf(
			"namespace '%s' must not contain '%s' or '%s'", namespace, KeyDelimiter, ReservedNamespaceDelimiter,
		))
	}
	return ValidateKey(namespace)
}

// MatchPattern returns the glob pattern matching every key in namespace.
func MatchPattern(namespace string) string {
	if namespace == "" {
		return WildcardAnyString
	}
	return keyNamespace(namespace) + KeyDelimiter + WildcardAnyString
}

// KeyName returns the name part of a key built by NewKey with namespace.
// ok is false if key does not belong to the namespace.
func KeyName(namespace, key string) (name string, ok bool) {
	if namespace == "" {
		if strings.HasPrefix(key, ReservedNamespaceDelimiter) {
			return "", false
		}
		return key, true
	}
	return strings.CutPrefix(key, keyNamespace(namespace)+KeyDelimiter)
}
