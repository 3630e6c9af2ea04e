package ast

import (
	"strings"
	"testing"
)

func TestDumpCodeText(t *testing.T) {
	var buf strings.Builder
	Dump(&buf, []Value{{Kind: KindCodeText, Payload: &CodeText{Text: "int x;"}}})
	got := buf.String()
	if !strings.Contains(got, `code-text "int x;"`) {
		t.Errorf("Dump output = %q, want it to contain code-text line", got)
	}
}

func TestDumpOutlineNestsItems(t *testing.T) {
	child := &OutlineItem{Name: "child", Tags: []*OutlineTag{{Name: "public"}}}
	parent := &OutlineItem{Name: "parent", Children: &Outline{Items: []*OutlineItem{child}}}
	outline := &Outline{Items: []*OutlineItem{parent}}

	var buf strings.Builder
	Dump(&buf, []Value{{Kind: KindOutline, Payload: outline}})
	got := buf.String()

	if !strings.Contains(got, "outline (1 items)") {
		t.Errorf("missing outline header, got %q", got)
	}
	if !strings.Contains(got, "item parent") {
		t.Errorf("missing parent item, got %q", got)
	}
	if !strings.Contains(got, "item child [public]") {
		t.Errorf("missing nested child item, got %q", got)
	}

	// the child line must be indented deeper than the parent line.
	parentLine := lineContaining(got, "item parent")
	childLine := lineContaining(got, "item child")
	if leadingSpaces(childLine) <= leadingSpaces(parentLine) {
		t.Errorf("child not indented deeper than parent: parent=%q child=%q", parentLine, childLine)
	}
}

func TestFilterStringRendersOperators(t *testing.T) {
	expr := Value{Kind: KindFilterAnd, Payload: &FilterAnd{
		A: Value{Kind: KindFilterTag, Payload: &FilterTag{Name: "a"}},
		B: Value{Kind: KindFilterNot, Payload: &FilterNot{
			Child: Value{Kind: KindFilterTag, Payload: &FilterTag{Name: "b"}},
		}},
	}}
	got := FilterString(expr)
	want := "(a & !b)"
	if got != want {
		t.Errorf("FilterString() = %q, want %q", got, want)
	}
}

func lineContaining(s, substr string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}
