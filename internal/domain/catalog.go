package domain

import (
	"fmt"
	"strings"
)

// RenamedItemName applies the category rename to an item name: the first
// exact occurrence of oldCategory is replaced. Names that do not contain it
// are returned unchanged with ok=false.
func RenamedItemName(itemName, oldCategory, newCategory string) (name string, ok bool) {
	if oldCategory == "" || !strings.Contains(itemName, oldCategory) {
		return itemName, false
	}
	return strings.Replace(itemName, oldCategory, newCategory, 1), true
}

// BatchItemNames turns free-text lines into item names suffixed with the
// category name. Blank lines are skipped.
func BatchItemNames(lines []string, categoryName string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if categoryName == "" {
			out = append(out, l)
			continue
		}
		out = append(out, l+" "+categoryName)
	}
	return out
}

// SplitLines splits a pasted block of text into lines.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	return name, nil
}

func ValidatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
