// Package classifier decides whether user input names a YouTube video.
package classifier

import (
	"regexp"
	"unicode/utf8"
)

const videoIDLength = 11

var (
	reVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	// The leading .* is greedy, so the last marker in the input wins.
	reURL = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|\&v=)([^#\&\?]*).*`)
)

// IsVideoID reports whether s has the shape of a YouTube video id.
func IsVideoID(s string) bool {
	return reVideoID.MatchString(s)
}

// VideoID extracts a YouTube video id from input. A bare id is returned as is.
// Anything else must contain one of the known YouTube URL markers followed by
// a token of exactly 11 characters (not bytes). Classification is purely syntactic.
func VideoID(input string) (string, bool) {
	if IsVideoID(input) {
		return input, true
	}

	match := reURL.FindStringSubmatch(input)
	if len(match) > 2 && utf8.RuneCountInString(match[2]) == videoIDLength {
		return match[2], true
	}

	return "", false
}
