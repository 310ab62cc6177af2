package ui

import (
	"io"
	"os"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a primitive CSS file: selectors .class, #id or a bare node type, comma-separated
// selector lists, and blocks of "key: value;". Combinators and @rules are skipped.
// Later rules override earlier for the same node.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var selectors []string
	var props map[string]string
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.BeginRulesetGrammar:
			if atDepth > 0 {
				selectors = nil
				continue
			}
			selectors = parseSelectors(p.Values())
			props = make(map[string]string)
		case css.DeclarationGrammar:
			if props == nil {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(string(data)))
			if key != "" {
				props[key] = joinValues(p.Values())
			}
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				rule := Rule{Selector: sel, Props: make(map[string]string, len(props))}
				for k, v := range props {
					rule.Props[k] = v
				}
				sheet.Rules = append(sheet.Rules, rule)
			}
			selectors, props = nil, nil
		}
	}
}

// LoadCSS reads and parses the stylesheet at path.
func LoadCSS(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCSS(string(data))
}

// parseSelectors splits a selector list on commas. Selectors containing combinators or
// whitespace-separated parts are dropped.
func parseSelectors(tokens []css.Token) []string {
	var out []string
	var b strings.Builder
	compound, space := false, false
	flush := func() {
		sel := strings.TrimSpace(b.String())
		if sel != "" && !compound {
			out = append(out, sel)
		}
		b.Reset()
		compound, space = false, false
	}
	for _, tok := range tokens {
		switch tok.TokenType {
		case css.CommaToken:
			flush()
		case css.WhitespaceToken:
			space = true
		default:
			if space && b.Len() > 0 {
				compound = true
			}
			space = false
			if !compound {
				b.Write(tok.Data)
			}
		}
	}
	flush()
	return out
}

func joinValues(tokens []css.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.TokenType == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(tok.Data)
	}
	return strings.TrimSpace(b.String())
}
