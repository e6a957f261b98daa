// Package label converts between the machine-readable tokens the studio
// backend stores ("in_progress", "banner") and the capitalized labels shown
// to people ("In Progress", "Banner"). The two forms round-trip losslessly
// for tokens of the shape word(_word)*.
package label

import "strings"

// Displayify turns "in_progress" into "In Progress". Empty input stays empty.
func Displayify(token string) string {
	if token == "" {
		return ""
	}
	words := strings.Split(token, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Machineify turns "In Progress" back into "in_progress".
func Machineify(display string) string {
	if display == "" {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(display), "_"))
}
