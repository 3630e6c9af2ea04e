package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders values as an indented tree for the -d/--debug flag
// (spec.md §6, §1 "debug pretty-printer" — kept intentionally minimal, per
// spec.md's framing of the dumper as a non-core external collaborator).
func Dump(w io.Writer, values []Value) {
	for _, v := range values {
		dump(w, v, 0)
	}
}

func dump(w io.Writer, v Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.Kind {
	case KindNone:
		fmt.Fprintf(w, "%snone\n", indent)
	case KindCodeText:
		t := v.Payload.(*CodeText)
		fmt.Fprintf(w, "%scode-text %q\n", indent, t.Text)
	case KindVariable:
		p := v.Payload.(*Variable)
		fmt.Fprintf(w, "%svariable %s\n", indent, p.Name)
	case KindLookup:
		p := v.Payload.(*Lookup)
		fmt.Fprintf(w, "%slookup %s!%s\n", indent, p.Target.Name, p.Name)
	case KindOutline:
		p := v.Payload.(*Outline)
		fmt.Fprintf(w, "%soutline (%d items)\n", indent, len(p.Items))
		for _, it := range p.Items {
			dumpItem(w, it, depth+1)
		}
	case KindOutlineItem:
		dumpItem(w, v.Payload.(*OutlineItem), depth)
	case KindMacro:
		p := v.Payload.(*Macro)
		names := make([]string, len(p.Inputs))
		for i, in := range p.Inputs {
			names[i] = in.Name
		}
		fmt.Fprintf(w, "%smacro(%s)\n", indent, strings.Join(names, ", "))
	case KindMacroCall:
		p := v.Payload.(*MacroCall)
		fmt.Fprintf(w, "%smacro-call (%d args)\n", indent, len(p.Inputs))
	case KindMap:
		p := v.Payload.(*Map)
		fmt.Fprintf(w, "%smap %s (%d lines)\n", indent, p.Item.Name, len(p.Lines))
	case KindFor:
		p := v.Payload.(*For)
		fmt.Fprintf(w, "%sfor %s reverse=%v list=%v\n", indent, p.Item.Name, p.Reverse, p.List)
	case KindFilterTag, KindFilterAny, KindFilterNot, KindFilterAnd, KindFilterOr:
		fmt.Fprintf(w, "%s%s\n", indent, filterString(v))
	default:
		fmt.Fprintf(w, "%s%s\n", indent, v.Kind)
	}
}

func dumpItem(w io.Writer, it *OutlineItem, depth int) {
	indent := strings.Repeat("  ", depth)
	tagNames := make([]string, len(it.Tags))
	for i, t := range it.Tags {
		tagNames[i] = t.Name
	}
	fmt.Fprintf(w, "%sitem %s [%s]\n", indent, it.Name, strings.Join(tagNames, " "))
	if it.Children != nil {
		for _, child := range it.Children.Items {
			dumpItem(w, child, depth+1)
		}
	}
}

// filterString renders a filter expression as source-like text, used by
// Dump.
func filterString(v Value) string {
	switch v.Kind {
	case KindFilterTag:
		return v.Payload.(*FilterTag).Name
	case KindFilterAny:
		return "*"
	case KindFilterNot:
		return "!" + filterString(v.Payload.(*FilterNot).Child)
	case KindFilterAnd:
		p := v.Payload.(*FilterAnd)
		return "(" + filterString(p.A) + " & " + filterString(p.B) + ")"
	case KindFilterOr:
		p := v.Payload.(*FilterOr)
		return "(" + filterString(p.A) + " | " + filterString(p.B) + ")"
	default:
		return "?"
	}
}

// FilterString exposes filterString for callers outside the package.
func FilterString(v Value) string { return filterString(v) }
