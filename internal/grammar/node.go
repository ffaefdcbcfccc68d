package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownToken is returned when a reference names a token that has not been
// defined yet.
var ErrUnknownToken = errors.New("unknown token")

// Node is one element of a pattern tree. Rendering produces regular
// expression source.
type Node interface {
	render(t *Table, b *strings.Builder)
	refs() []string
}

type lit string

// Lit matches text literally.
func Lit(text string) Node { return lit(text) }

func (n lit) render(_ *Table, b *strings.Builder) { b.WriteString(regexp.QuoteMeta(string(n))) }
func (n lit) refs() []string                      { return nil }

type raw string

// Raw inserts a regular expression fragment as-is.
func Raw(expr string) Node { return raw(expr) }

func (n raw) render(_ *Table, b *strings.Builder) { b.WriteString(string(n)) }
func (n raw) refs() []string                      { return nil }

type seq []Node

// Seq matches each node in turn.
func Seq(nodes ...Node) Node { return seq(nodes) }

func (n seq) render(t *Table, b *strings.Builder) {
	for _, c := range n {
		c.render(t, b)
	}
}

func (n seq) refs() []string { return collect(n) }

type alt []Node

// Alt matches any one of its options, preferring earlier ones.
func Alt(options ...Node) Node { return alt(options) }

func (n alt) render(t *Table, b *strings.Builder) {
	if len(n) == 0 {
		// Nothing to choose from: never match.
		b.WriteString(`[^\x00-\x{10FFFF}]`)
		return
	}
	b.WriteString("(?:")
	for i, c := range n {
		if i > 0 {
			b.WriteByte('|')
		}
		c.render(t, b)
	}
	b.WriteByte(')')
}

func (n alt) refs() []string { return collect(n) }

// Words is shorthand for an alternation of literal phrases.
func Words(phrases ...string) Node {
	opts := make([]Node, len(phrases))
	for i, p := range phrases {
		opts[i] = Lit(p)
	}
	return Alt(opts...)
}

type opt struct{ n Node }

// Opt makes a node optional.
func Opt(n Node) Node { return opt{n} }

func (n opt) render(t *Table, b *strings.Builder) {
	b.WriteString("(?:")
	n.n.render(t, b)
	b.WriteString(")?")
}

func (n opt) refs() []string { return n.n.refs() }

type capture struct {
	name string
	n    Node
}

// Capture records the text matched by n under name.
func Capture(name string, n Node) Node { return capture{name: name, n: n} }

func (n capture) render(t *Table, b *strings.Builder) {
	b.WriteString("(?P<")
	b.WriteString(n.name)
	b.WriteByte('>')
	n.n.render(t, b)
	b.WriteByte(')')
}

func (n capture) refs() []string { return n.n.refs() }

type ref string

// Ref expands to the pattern of a previously defined token.
func Ref(token string) Node { return ref(token) }

func (n ref) render(t *Table, b *strings.Builder) {
	// Table.Define guarantees the token exists.
	b.WriteString("(?:")
	t.tokens[t.index[string(n)]].Node.render(t, b)
	b.WriteByte(')')
}

func (n ref) refs() []string { return []string{string(n)} }

func collect(nodes []Node) []string {
	var out []string
	for _, c := range nodes {
		out = append(out, c.refs()...)
	}
	return out
}

// Token is a named, reusable sub-pattern.
type Token struct {
	Name string
	Node Node
}

// Table is an ordered set of tokens. A token may only reference tokens defined
// before it, which rules out reference cycles.
type Table struct {
	tokens []Token
	index  map[string]int
}

// NewTable returns an empty token table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Define appends a token. It fails when the name is already taken or when the
// pattern references a token that is not yet defined.
func (t *Table) Define(name string, n Node) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("token %q defined twice", name)
	}
	for _, r := range n.refs() {
		if _, ok := t.index[r]; !ok {
			return fmt.Errorf("token %q references %q: %w", name, r, ErrUnknownToken)
		}
	}
	t.index[name] = len(t.tokens)
	t.tokens = append(t.tokens, Token{Name: name, Node: n})
	return nil
}

// Has reports whether a token is defined.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Render expands n into regular expression source.
func (t *Table) Render(n Node) string {
	var b strings.Builder
	n.render(t, &b)
	return b.String()
}
