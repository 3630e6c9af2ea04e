package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swansontec/outline2c-sub000/internal/arena"
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/parser"
)

func runPipeline(t *testing.T, src string) string {
	t.Helper()
	a := arena.New()
	sc := ast.NewRootScope()
	values, err := parser.ParseTop(a, nil, "test.ol", src, sc)
	require.NoError(t, err)

	var out strings.Builder
	g := New(a, nil)
	require.NoError(t, g.Generate(&out, values))
	return out.String()
}

// TestVerbatimCode exercises spec.md §8 end-to-end scenario 1: plain
// host-language text with no directives passes through unchanged.
func TestVerbatimCode(t *testing.T) {
	got := runPipeline(t, "int main() { return 0; }")
	assert.Equal(t, "int main() { return 0; }", got)
}

// TestOutlineDeclarationAndForGeneratesPerItem exercises scenario 2's
// intent (adapted to this implementation's `name = outline {...}` grammar,
// see internal/parser/parser.go's documented departure from the
// distillation's informal `outline cars {...}` gloss): declare an outline,
// then iterate it, writing one line per item.
func TestOutlineDeclarationAndForGeneratesPerItem(t *testing.T) {
	src := `\ol cars = outline { sedan; coupe; };` + "\n" +
		"\\ol for c in cars {c\n}"
	got := runPipeline(t, src)
	assert.Equal(t, "sedan\ncoupe\n", got)
}

func TestForWithFilterSkipsNonMatching(t *testing.T) {
	src := `\ol cars = outline { public sedan; coupe; };` + "\n" +
		`\ol for c in cars with public {c;}`
	got := runPipeline(t, src)
	assert.Equal(t, "sedan;", got)
}

func TestForReverseIteratesBackwards(t *testing.T) {
	src := `\ol cars = outline { sedan; coupe; wagon; };` + "\n" +
		`\ol for c in cars reverse {c,}`
	got := runPipeline(t, src)
	assert.Equal(t, "wagon,coupe,sedan,", got)
}

func TestForListInsertsCommasBetweenItems(t *testing.T) {
	src := `\ol cars = outline { sedan; coupe; wagon; };` + "\n" +
		`\ol for c in cars list {c}`
	got := runPipeline(t, src)
	assert.Equal(t, "sedan,coupe,wagon", got)
}

func TestLookupBuiltinTransforms(t *testing.T) {
	src := `\ol cars = outline { HTTPServer; };` + "\n" +
		`\ol for c in cars {c!lower c!upper c!camel c!mixed c!quote}`
	got := runPipeline(t, src)
	assert.Equal(t, `http_server HTTP_SERVER HttpServer httpServer "HTTPServer"`, got)
}

func TestLookupValuedTag(t *testing.T) {
	src := `\ol cars = outline { color = { "red" } sedan; };` + "\n" +
		`\ol for c in cars {c!color}`
	got := runPipeline(t, src)
	assert.Equal(t, ` "red" `, got)
}

func TestLookupUnknownNameErrors(t *testing.T) {
	src := `\ol cars = outline { sedan; };` + "\n" +
		`\ol for c in cars {c!nosuch}`
	a := arena.New()
	sc := ast.NewRootScope()
	values, err := parser.ParseTop(a, nil, "test.ol", src, sc)
	require.NoError(t, err)

	var out strings.Builder
	g := New(a, nil)
	err = g.Generate(&out, values)
	assert.Error(t, err)
}

func TestMacroCallSubstitutesArgument(t *testing.T) {
	src := `\ol greet = macro(name) {hi name!lower};` + "\n" +
		`\ol cars = outline { Sedan; };` + "\n" +
		`\ol for c in cars {greet(c)}`
	got := runPipeline(t, src)
	assert.Equal(t, "hi sedan", got)
}

func TestMapDispatchesOnFirstMatchingLine(t *testing.T) {
	src := `\ol cars = outline { sedan type1; coupe type2; };` + "\n" +
		`\ol for c in cars {\ol map c {sedan {"four door"}coupe {"two door"}}}`
	got := runPipeline(t, src)
	assert.Equal(t, `"four door""two door"`, got)
}

func TestMapNoMatchErrors(t *testing.T) {
	src := `\ol cars = outline { wagon; };` + "\n" +
		`\ol for c in cars {\ol map c {sedan {"x"}}}`
	a := arena.New()
	sc := ast.NewRootScope()
	values, err := parser.ParseTop(a, nil, "test.ol", src, sc)
	require.NoError(t, err)

	var out strings.Builder
	g := New(a, nil)
	err = g.Generate(&out, values)
	assert.Error(t, err)
}

// TestNestedForOverChildren exercises a nested outline: a for over children
// of an outline item reached through a bound Variable's Children.
func TestNestedForOverChildren(t *testing.T) {
	src := `\ol cars = outline { sedan { door; door; window; } };` + "\n" +
		`\ol for c in cars {\ol for p in c {p;}}`
	got := runPipeline(t, src)
	assert.Equal(t, "door;door;window;", got)
}

func TestUnionConcatenatesFilteredOperands(t *testing.T) {
	src := `\ol domestic = outline { public ford; gm; };` + "\n" +
		`\ol imported = outline { public toyota; honda; };` + "\n" +
		`\ol all = union { domestic with public, imported with public };` + "\n" +
		`\ol for c in all {c,}`
	got := runPipeline(t, src)
	assert.Equal(t, "ford,toyota,", got)
}
