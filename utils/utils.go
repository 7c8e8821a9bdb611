package utils

import "strings"

func ArrayContains(arr []string, s string) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}

// IsChecked reports whether a submitted checkbox value means "on".
func IsChecked(v string) bool {
	return ArrayContains([]string{"on", "true", "1", "yes"}, strings.ToLower(strings.TrimSpace(v)))
}
