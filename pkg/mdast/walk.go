package mdast

import (
	"strconv"
	"strings"
)

// RootPath is the path prefix of top-level tokens.
const RootPath = "root"

// WalkFunc is the function signature for Walk callbacks.
// path locates the token, e.g. "root[2].children[0]".
// Return a non-nil error to stop the walk.
type WalkFunc func(tok Token, path string) error

// Walk performs a depth-first pre-order traversal of tree.
// If walkFunc returns a non-nil error, the walk stops immediately and returns
// that error.
func Walk(tree []Token, walkFunc WalkFunc) error {
	return walkTokens(tree, RootPath, walkFunc)
}

func walkTokens(tokens []Token, prefix string, walkFunc WalkFunc) error {
	for i, tok := range tokens {
		path := IndexPath(prefix, i)

		// Visit the current token.
		if err := walkFunc(tok, path); err != nil {
			return err
		}

		// Visit children.
		if tok.HasChildren() {
			if err := walkTokens(tok.Children, ChildrenPath(path), walkFunc); err != nil {
				return err
			}
		}
	}

	return nil
}

// IndexPath appends an index to a path prefix: IndexPath("root", 2) is "root[2]".
func IndexPath(prefix string, index int) string {
	return prefix + "[" + strconv.Itoa(index) + "]"
}

// ChildrenPath returns the prefix addressing the children of the token at path.
func ChildrenPath(path string) string {
	return path + ".children"
}

// PlainText concatenates the Raw text of every text token in the tree, in
// walk order.
func PlainText(tree []Token) string {
	var sb strings.Builder

	//nolint:errcheck,revive // the callback never returns an error
	Walk(tree, func(tok Token, _ string) error {
		if tok.Kind == KindText {
			sb.WriteString(tok.Raw)
		}
		return nil
	})

	return sb.String()
}
