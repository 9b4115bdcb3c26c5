package util

import (
	"strings"
	"unicode"
)

// MakeTextList gives a nice list of things based on their display name.
//
// TODO: turn this into a generic function that accepts displayable OR ~string
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		items[len(items)-1] = "and " + items[len(items)-1]
		output += strings.Join(items, ", ")
	}

	return output
}

// ArticleFor returns "a" or "an", whichever is grammatically appropriate to
// precede the given word, based on whether it starts with a vowel sound. If
// capitalize is true, the article is capitalized ("A"/"An").
func ArticleFor(word string, capitalize bool) string {
	article := "a"

	if len(word) > 0 {
		first := unicode.ToLower(rune(word[0]))
		switch first {
		case 'a', 'e', 'i', 'o', 'u':
			article = "an"
		}
	}

	if capitalize {
		article = strings.ToUpper(article[:1]) + article[1:]
	}

	return article
}
