package svgimport

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// ErrNoRoot во входных данных нет корневого элемента.
var ErrNoRoot = errors.New("svg: no root element")

// ============================================================
// DOM
// ============================================================

// Node узел дерева документа. Текстовые узлы имеют пустой Tag.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Text     string
}

// Attr значение атрибута без пробелов по краям; пустая строка, если атрибута нет.
func (n *Node) Attr(name string) string {
	return strings.TrimSpace(n.Attrs[name])
}

func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// TextContent склеивает текст всех потомков в порядке документа.
func (n *Node) TextContent() string {
	if n.Tag == "" {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// ParseDOM строит дерево элементов из XML. Возвращается первый корневой элемент;
// инструкции обработки, комментарии и DOCTYPE пропускаются.
func ParseDOM(r io.Reader) (*Node, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	l := xml.NewLexer(z)
	var root *Node
	var stack []*Node
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, fmt.Errorf("parse svg: %w", l.Err())
			}
			if root == nil {
				return nil, ErrNoRoot
			}
			return root, nil

		case xml.StartTagToken:
			n := &Node{Tag: localName(string(data[1:])), Attrs: map[string]string{}}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') {
					val = val[1 : len(val)-1]
				}
				n.Attrs[string(l.Text())] = html.UnescapeString(string(val))
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			} else {
				continue
			}
			if tt != xml.StartTagCloseVoidToken {
				stack = append(stack, n)
			}

		case xml.EndTagToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.TextToken:
			appendText(stack, html.UnescapeString(string(data)))

		case xml.CDATAToken:
			s := string(data)
			s = strings.TrimPrefix(s, "<![CDATA[")
			s = strings.TrimSuffix(s, "]]>")
			appendText(stack, s)
		}
	}
}

func appendText(stack []*Node, text string) {
	if len(stack) == 0 || text == "" {
		return
	}
	parent := stack[len(stack)-1]
	parent.Children = append(parent.Children, &Node{Text: text})
}

// localName отбрасывает префикс пространства имён: "svg:rect" → "rect".
func localName(tag string) string {
	if i := strings.LastIndexByte(tag, ':'); i >= 0 {
		return tag[i+1:]
	}
	return tag
}
