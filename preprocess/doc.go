// Package preprocess turns raw posts into token documents.
//
// Cleaning strips @mentions, #hashtags and URLs, drops the " : " separator
// news feeds put between a headline and its source, and lowercases the rest.
// Tokens are the whitespace-separated words of the cleaned text:
//
//	preprocess.Tokenize("Breast cancer risk test devised @BBCHealth #cancer http://bbc.in/1CimpJF")
//	// [breast cancer risk test devised]
package preprocess
