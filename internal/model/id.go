package model

import "fmt"

// idSep joins hierarchical identifier tokens. Distinct (parentID, shortID)
// pairs always produce distinct results because parentID is itself built
// from the same rule rooted at distinct top-level ids.
const idSep = "-"

// BuildID computes the hierarchical identifier for a menu node from its own
// short id and its parent's hierarchical id. Deterministic, no I/O.
func BuildID(shortID, parentID string) (string, error) {
	if shortID == "" {
		return "", fmt.Errorf("empty menu id under %q", parentID)
	}
	if parentID == "" {
		return shortID, nil
	}
	return parentID + idSep + shortID, nil
}

// ShortcutID joins a menu's hierarchical id with a shortcut's own token.
func ShortcutID(menuID, shortID string) string {
	return menuID + idSep + shortID
}

// JoinCategory extends a dot-joined category path by one token.
func JoinCategory(parent, own string) string {
	if parent == "" {
		return own
	}
	return parent + "." + own
}
