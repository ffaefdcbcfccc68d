// Package grammar turns free-text commands into an action plus named
// parameters.
//
// The grammar is an ordered list of templates. Each template is compiled
// against a token table into an anchored, case-insensitive regular
// expression; the first template that matches the whole input wins.
package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

// Parsed is the outcome of matching an input against the grammar.
type Parsed struct {
	Template Template
	Params   map[string]string
}

type command struct {
	Template
	re *regexp.Regexp
}

// Grammar is a compiled, ordered template list.
type Grammar struct {
	commands []command
}

// Compile builds the grammar for the given roster. The PLAYER token depends on
// the player names, so a grammar is only valid for the snapshot it was
// compiled from.
func Compile(templates []Template, playerNames []string) (*Grammar, error) {
	tokens, err := NewTokens(playerNames)
	if err != nil {
		return nil, err
	}
	g := &Grammar{commands: make([]command, 0, len(templates))}
	for _, tpl := range templates {
		node, err := parseTemplate(tokens, tpl.Pattern)
		if err != nil {
			return nil, err
		}
		expr := "(?i)^" + tokens.Render(node) + "$"
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compiling template %q: %w", tpl.Pattern, err)
		}
		g.commands = append(g.commands, command{Template: tpl, re: re})
	}
	return g, nil
}

// Parse tries each template in order and returns the first match. Only groups
// that took part in the match appear in Params.
func (g *Grammar) Parse(input string) (Parsed, bool) {
	for _, c := range g.commands {
		m := c.re.FindStringSubmatchIndex(input)
		if m == nil {
			continue
		}
		params := make(map[string]string)
		for i, name := range c.re.SubexpNames() {
			if name == "" || m[2*i] < 0 {
				continue
			}
			params[name] = input[m[2*i]:m[2*i+1]]
		}
		return Parsed{Template: c.Template, Params: params}, true
	}
	return Parsed{}, false
}

// Expression returns the compiled expression for the template at index i.
func (g *Grammar) Expression(i int) string {
	return g.commands[i].re.String()
}

// parseTemplate converts template text into a node sequence. Words are joined
// by single spaces; an optional word carries its adjoining space with it.
func parseTemplate(tokens *Table, pattern string) (Node, error) {
	words := strings.Fields(pattern)
	var parts []Node
	for i := 0; i < len(words); i++ {
		w := words[i]
		optional := false
		if strings.HasPrefix(w, "[") || strings.HasSuffix(w, "]") {
			if !strings.HasPrefix(w, "[") || !strings.HasSuffix(w, "]") || len(w) < 3 {
				return nil, fmt.Errorf("template %q: malformed optional word %q", pattern, w)
			}
			optional = true
			w = w[1 : len(w)-1]
		}

		var n Node
		if !optional && i+1 < len(words) && tokens.Has(w+" "+words[i+1]) {
			n = Ref(w + " " + words[i+1])
			i++
		} else if tokens.Has(w) {
			n = Ref(w)
		} else {
			n = Lit(w)
		}

		switch {
		case optional && len(parts) == 0:
			parts = append(parts, Opt(Seq(n, Lit(" "))))
		case optional:
			parts = append(parts, Opt(Seq(Lit(" "), n)))
		case len(parts) > 0 && !isLeadingOpt(parts):
			parts = append(parts, Lit(" "), n)
		default:
			parts = append(parts, n)
		}
	}
	return Seq(parts...), nil
}

// isLeadingOpt reports whether everything so far is a leading optional word,
// which already supplies the separating space.
func isLeadingOpt(parts []Node) bool {
	if len(parts) != 1 {
		return false
	}
	_, ok := parts[0].(opt)
	return ok
}

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	trailingStop = regexp.MustCompile(`[.?!]+$`)
)

// NormalizeInput trims the input, collapses runs of whitespace and drops
// trailing sentence punctuation added by dictation.
func NormalizeInput(input string) string {
	s := spaceRun.ReplaceAllString(strings.TrimSpace(input), " ")
	s = trailingStop.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
