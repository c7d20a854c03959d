package ucl

import (
	"log/slog"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/ucl/log"
)

// hyphenPatcher reconstructs hyphenated keys from the BinaryNode("-")
// subtraction chains produced by expr's parser.
//
// Configuration keys may contain hyphens (e.g., "log-level"), but expr
// parses them as subtraction. This visitor detects subtraction chains
// and, when the combined name exists in the document, patches the node
// to a single identifier or member access.
type hyphenPatcher struct {
	doc    map[string]any
	logger log.Logger
}

// Visit implements ast.Visitor for hyphenPatcher.
func (p *hyphenPatcher) Visit(node *ast.Node) {
	bin, ok := (*node).(*ast.BinaryNode)
	if !ok || bin.Operator != "-" {
		return
	}

	// Right side must be an identifier (the segment after the hyphen).
	right, ok := bin.Right.(*ast.IdentifierNode)
	if !ok {
		return
	}

	switch left := bin.Left.(type) {
	case *ast.IdentifierNode:
		p.patchIdent(node, left, right)

	case *ast.MemberNode:
		p.patchMember(node, left, right)

	case *ast.BinaryNode:
		if left.Operator == "-" {
			p.patchChain(node, left, right)
		}
	}
}

// patchIdent handles IdentNode("a") - IdentNode("b") and rewrites to
// IdentNode("a-b") when "a-b" is a top-level key.
func (p *hyphenPatcher) patchIdent(
	node *ast.Node,
	left *ast.IdentifierNode,
	right *ast.IdentifierNode,
) {
	combined := left.Value + "-" + right.Value

	if _, ok := p.doc[combined]; !ok {
		return
	}

	ast.Patch(node, &ast.IdentifierNode{Value: combined})

	p.logger.Trace("patch hyphenated",
		slog.String("combined_name", combined),
		slog.String("patch_type", "identifier"))
}

// patchMember handles MemberNode(base, "prop") - IdentNode("name") and
// rewrites it to MemberNode(base, "prop-name") when valid.
func (p *hyphenPatcher) patchMember(
	node *ast.Node,
	left *ast.MemberNode,
	right *ast.IdentifierNode,
) {
	prop, ok := left.Property.(*ast.StringNode)
	if !ok {
		return
	}

	combined := prop.Value + "-" + right.Value

	basePath, ok := memberPath(left.Node)
	if !ok {
		return
	}

	if !p.childExists(basePath, combined) {
		return
	}

	ast.Patch(node, &ast.MemberNode{
		Node:     left.Node,
		Property: &ast.StringNode{Value: combined},
		Optional: false,
		Method:   false,
	})

	p.logger.Trace("patch hyphenated",
		slog.String("combined_name", combined),
		slog.String("patch_type", "member"))
}

// patchChain handles nested BinaryNode("-") chains where the inner node
// was not patched, e.g. because only the full chain matches a key.
func (p *hyphenPatcher) patchChain(
	node *ast.Node,
	left *ast.BinaryNode,
	right *ast.IdentifierNode,
) {
	base, name, ok := hyphenChain(left)
	if !ok {
		return
	}

	combined := name + "-" + right.Value

	if base == nil {
		// Top-level chain: e.g. log-pretty-print
		if _, ok := p.doc[combined]; ok {
			ast.Patch(node, &ast.IdentifierNode{Value: combined})

			p.logger.Trace("patch hyphenated",
				slog.String("combined_name", combined),
				slog.String("patch_type", "chain"))
		}

		return
	}

	// Member access chain: e.g. server.log-pretty-print
	basePath, ok := memberPath(base)
	if !ok {
		return
	}

	if p.childExists(basePath, combined) {
		ast.Patch(node, &ast.MemberNode{
			Node:     base,
			Property: &ast.StringNode{Value: combined},
			Optional: false,
			Method:   false,
		})

		p.logger.Trace("patch hyphenated",
			slog.String("combined_name", combined),
			slog.String("patch_type", "chain"))
	}
}

// hyphenChain recursively walks unpatched BinaryNode("-") chains to
// extract the base node and accumulated hyphenated name.
func hyphenChain(
	bin *ast.BinaryNode,
) (base ast.Node, name string, ok bool) {
	right, ok := bin.Right.(*ast.IdentifierNode)
	if !ok {
		return nil, "", false
	}

	switch left := bin.Left.(type) {
	case *ast.IdentifierNode:
		return nil, left.Value + "-" + right.Value, true

	case *ast.MemberNode:
		prop, ok := left.Property.(*ast.StringNode)
		if !ok {
			return nil, "", false
		}

		return left.Node, prop.Value + "-" + right.Value, true

	case *ast.BinaryNode:
		if left.Operator != "-" {
			return nil, "", false
		}

		innerBase, innerName, ok := hyphenChain(left)
		if !ok {
			return nil, "", false
		}

		return innerBase, innerName + "-" + right.Value, true

	default:
		return nil, "", false
	}
}

// memberPath walks a MemberNode chain to produce path segments.
func memberPath(node ast.Node) ([]string, bool) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return []string{n.Value}, true

	case *ast.MemberNode:
		prop, ok := n.Property.(*ast.StringNode)
		if !ok {
			return nil, false
		}

		base, ok := memberPath(n.Node)
		if !ok {
			return nil, false
		}

		return append(base, prop.Value), true

	default:
		return nil, false
	}
}

// childExists reports whether the mapping at path has a child with the
// given name.
func (p *hyphenPatcher) childExists(path []string, name string) bool {
	cur := any(p.doc)

	for i := 0; i < len(path); i++ {
		m, ok := cur.(map[string]any)
		if !ok {
			return false
		}

		cur, ok = m[path[i]]
		if !ok {
			return false
		}
	}

	m, ok := cur.(map[string]any)
	if !ok {
		return false
	}

	_, ok = m[name]

	return ok
}
