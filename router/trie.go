// used by the router to match on paths

package router

import (
	"fmt"
	"strings"

	"github.com/gemgate/gemgate/app"
)

type trieNode struct {
	// static children
	children map[string]*trieNode

	// parameter segment, eg. :id
	paramChild *trieNode
	paramName  string

	// route handler, set on terminal nodes
	handler app.Handler
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// splitPath normalizes a pattern or request path into its segments.
// Leading, trailing and doubled slashes are dropped, so "/a/b/" and "a//b"
// compare equal to "/a/b".
func splitPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// addRoute adds a new route with its handler to the trie. The first handler
// registered for a node wins; a later identical pattern is ignored. The
// parameter name at a given position is shared by every pattern that reaches
// it, so registering a second pattern with a different name there is a
// programming error and panics.
func (n *trieNode) addRoute(pattern string, handler app.Handler) {
	currentNode := n
	for _, segment := range splitPath(pattern) {
		if strings.HasPrefix(segment, ":") {
			name := strings.TrimPrefix(segment, ":")
			if currentNode.paramChild == nil {
				currentNode.paramChild = newTrieNode()
				currentNode.paramName = name
			} else if currentNode.paramName != name {
				panic(fmt.Sprintf("router: conflicting parameter names :%s and :%s in pattern %s", currentNode.paramName, name, pattern))
			}
			currentNode = currentNode.paramChild
		} else {
			child, ok := currentNode.children[segment]
			if !ok {
				child = newTrieNode()
				currentNode.children[segment] = child
			}
			currentNode = child
		}
	}

	if currentNode.handler == nil {
		currentNode.handler = handler
	}
}

// match walks the trie for the given path segments and collects parameter
// values into params. A pattern only matches a path with exactly the same
// segment count. Static children are tried before the parameter child, and
// a failed static descent backtracks into the parameter child, so "/a/b"
// beats "/a/:x" for path /a/b while "/a/:x/c" still matches /a/b/c when
// "/a/b" exists on another route.
func (n *trieNode) match(segments []string, params map[string]string) (app.Handler, bool) {
	if len(segments) == 0 {
		if n.handler == nil {
			return nil, false
		}
		return n.handler, true
	}

	segment := segments[0]
	if child, ok := n.children[segment]; ok {
		if handler, ok := child.match(segments[1:], params); ok {
			return handler, true
		}
	}

	if n.paramChild != nil {
		if handler, ok := n.paramChild.match(segments[1:], params); ok {
			params[n.paramName] = segment
			return handler, true
		}
	}

	return nil, false
}
