// Package e2e runs the end-to-end scenarios of spec.md §8 against literal
// JSON AST fixtures, grounded on the teacher's go.mod dependency on
// golang.org/x/tools (used there for golang.org/x/tools/go/packages;
// here for golang.org/x/tools/txtar as the golden-fixture format, since
// txtar's "named file sections in one literal blob" shape is the natural
// fit for a handful of small scenario + expectation pairs kept inline in
// the test itself rather than scattered across testdata files).
package e2e

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/typhon-lang/typhon-analyzer/internal/analyzer"
	"github.com/typhon-lang/typhon-analyzer/internal/ast"
	"github.com/typhon-lang/typhon-analyzer/internal/cfg"
	"github.com/typhon-lang/typhon-analyzer/internal/diagnostics"
)

// scenarios bundles the six literal end-to-end fixtures of spec.md §8 as
// one txtar archive: each scenario contributes a "<name>.json" file (a
// DecodeJSON-shaped fixture) and the test function for that scenario reads
// it back out by name rather than re-embedding the JSON inline.
var scenarios = txtar.Parse([]byte(`
-- closure.json --
{"kind":"Module","statements":[
  {"kind":"FunctionDecl","name":"outer","body":[
    {"kind":"VariableDecl","name":"x","value":{"kind":"IntLiteral","value_int":1}},
    {"kind":"FunctionDecl","name":"inner","body":[
      {"kind":"ReturnStmt","value":{"kind":"VariableExpr","name":"x"}}
    ]},
    {"kind":"ReturnStmt","value":{"kind":"VariableExpr","name":"inner"}}
  ]}
]}
-- use_before_assignment.json --
{"kind":"Module","statements":[
  {"kind":"FunctionDecl","name":"f","parameters":[{"kind":"ParameterIdent","name":"c"}],"body":[
    {"kind":"IfStmt","condition":{"kind":"VariableExpr","name":"c"},"body":[
      {"kind":"VariableDecl","name":"y","value":{"kind":"IntLiteral","value_int":1}}
    ]},
    {"kind":"ReturnStmt","value":{"kind":"VariableExpr","name":"y"},"span":{"start":100,"end":106}}
  ]}
]}
-- numeric_unification.json --
{"kind":"Module","statements":[
  {"kind":"FunctionDecl","name":"g",
    "parameters":[
      {"kind":"ParameterIdent","name":"a","type_annotation":{"kind":"NameType","name":"int"}},
      {"kind":"ParameterIdent","name":"b","type_annotation":{"kind":"NameType","name":"float"}}
    ],
    "return_type":{"kind":"NameType","name":"float"},
    "body":[
      {"kind":"ReturnStmt","value":{"kind":"BinaryExpr","op":"+",
        "left":{"kind":"VariableExpr","name":"a"},
        "right":{"kind":"VariableExpr","name":"b"}}}
    ]}
]}
-- attribute_error.json --
{"kind":"Module","statements":[
  {"kind":"FunctionDecl","name":"h","body":[
    {"kind":"VariableDecl","name":"s","type_annotation":{"kind":"NameType","name":"str"},"value":{"kind":"StringLiteral","value_string":"x"}},
    {"kind":"ReturnStmt","value":{"kind":"AttributeExpr","value":{"kind":"VariableExpr","name":"s"},"attr":"nonexistent"}}
  ]}
]}
-- for_loop_target.json --
{"kind":"Module","statements":[
  {"kind":"FunctionDecl","name":"k",
    "parameters":[{"kind":"ParameterIdent","name":"xs","type_annotation":{"kind":"GenericType","name":"list","type_args":[{"kind":"NameType","name":"int"}]}}],
    "return_type":{"kind":"NameType","name":"int"},
    "body":[
      {"kind":"VariableDecl","name":"total","value":{"kind":"IntLiteral","value_int":0}},
      {"kind":"ForStmt",
        "target":{"kind":"IdentifierPattern","name":"i"},
        "iter":{"kind":"VariableExpr","name":"xs"},
        "body":[
          {"kind":"AssignmentStmt","target":{"kind":"VariableExpr","name":"total"},
            "value":{"kind":"BinaryExpr","op":"+","left":{"kind":"VariableExpr","name":"total"},"right":{"kind":"VariableExpr","name":"i"}}}
        ]},
      {"kind":"ReturnStmt","value":{"kind":"VariableExpr","name":"total"}}
    ]}
]}
-- all_paths_return.json --
{"kind":"Module","statements":[
  {"kind":"FunctionDecl","name":"m",
    "parameters":[{"kind":"ParameterIdent","name":"c","type_annotation":{"kind":"NameType","name":"bool"}}],
    "return_type":{"kind":"NameType","name":"int"},
    "body":[
      {"kind":"IfStmt","condition":{"kind":"VariableExpr","name":"c"},"body":[
        {"kind":"ReturnStmt","value":{"kind":"IntLiteral","value_int":1}}
      ]}
    ]}
]}
`))

func fixture(t *testing.T, name string) (*ast.Arena, ast.NodeID) {
	t.Helper()
	for _, f := range scenarios.Files {
		if f.Name == name {
			a, root, err := ast.DecodeJSON(f.Data)
			if err != nil {
				t.Fatalf("DecodeJSON(%s) error = %v", name, err)
			}
			return a, root
		}
	}
	t.Fatalf("fixture %s not found in scenarios archive", name)
	return nil, ast.NodeID{}
}

func firstFunctionDecl(t *testing.T, a *ast.Arena, root ast.NodeID) (ast.NodeID, *ast.FunctionDecl) {
	t.Helper()
	fns := analyzer.CollectFunctionDecls(a, root)
	if len(fns) == 0 {
		t.Fatalf("no FunctionDecl found in fixture")
	}
	decl, err := ast.GetAs[*ast.FunctionDecl](a, fns[0])
	if err != nil {
		t.Fatalf("GetAs[*FunctionDecl]() error = %v", err)
	}
	return fns[0], decl
}

// Scenario 1: closure capture — x in outer's scope is captured by inner.
func TestScenario1_ClosureCapture(t *testing.T) {
	a, root := fixture(t, "closure.json")
	table, _, bag := analyzer.AnalyzeModule(a, root)

	if !bag.Empty() {
		t.Fatalf("bag = %v, want empty", bag.Items())
	}

	outerID, _ := firstFunctionDecl(t, a, root)
	outerScope, ok := table.ScopeOf(outerID)
	if !ok {
		t.Fatalf("ScopeOf(outer) not found")
	}
	sym, ok := table.LookupInScope(outerScope, "x")
	if !ok {
		t.Fatalf("symbol x not found in outer's scope")
	}
	if !sym.IsCaptured() {
		t.Errorf("IsCaptured() = false, want true: x must be captured by inner")
	}
}

// Scenario 2: use-before-assignment across an if with no else.
func TestScenario2_UseBeforeAssignmentAcrossBranches(t *testing.T) {
	a, root := fixture(t, "use_before_assignment.json")
	_, _, bag := analyzer.AnalyzeModule(a, root)

	var found *diagnostics.UseBeforeAssignment
	for _, d := range bag.Items() {
		if uba, ok := d.(*diagnostics.UseBeforeAssignment); ok {
			found = uba
		}
	}
	if found == nil {
		t.Fatalf("bag = %v, want one UseBeforeAssignment{Name: \"y\"}", bag.Items())
	}
	if found.Name != "y" {
		t.Errorf("Name = %q, want y", found.Name)
	}
	if found.Span().Start != 100 || found.Span().End != 106 {
		t.Errorf("Span() = %v, want [100,106]", found.Span())
	}
}

// Scenario 3: numeric unification — int + float yields Float, no diagnostics.
func TestScenario3_NumericUnification(t *testing.T) {
	a, root := fixture(t, "numeric_unification.json")
	_, env, bag := analyzer.AnalyzeModule(a, root)

	if !bag.Empty() {
		t.Fatalf("bag = %v, want empty", bag.Items())
	}

	_, decl := firstFunctionDecl(t, a, root)
	ret, err := ast.GetAs[*ast.ReturnStmt](a, decl.Body[0])
	if err != nil {
		t.Fatalf("GetAs[*ReturnStmt]() error = %v", err)
	}
	gotType := env.TypeOf(ret.Value)
	if gotType.String() != "Float" {
		t.Errorf("type of a + b = %s, want Float", gotType.String())
	}
}

// Scenario 4: an attribute error on a concrete `str`-typed value.
func TestScenario4_AttributeErrorOnConcreteType(t *testing.T) {
	a, root := fixture(t, "attribute_error.json")
	_, _, bag := analyzer.AnalyzeModule(a, root)

	var found *diagnostics.AttributeError
	for _, d := range bag.Items() {
		if ae, ok := d.(*diagnostics.AttributeError); ok {
			found = ae
		}
	}
	if found == nil {
		t.Fatalf("bag = %v, want one AttributeError{type_name: str, attribute: nonexistent}", bag.Items())
	}
	if found.TypeName != "str" {
		t.Errorf("TypeName = %q, want str", found.TypeName)
	}
	if found.Attribute != "nonexistent" {
		t.Errorf("Attribute = %q, want nonexistent", found.Attribute)
	}
}

// Scenario 5: a for-loop target is visible in the body and after the loop.
func TestScenario5_ForLoopTargetVisibleInBodyAndAfter(t *testing.T) {
	a, root := fixture(t, "for_loop_target.json")
	_, env, bag := analyzer.AnalyzeModule(a, root)

	if !bag.Empty() {
		t.Fatalf("bag = %v, want empty", bag.Items())
	}

	_, decl := firstFunctionDecl(t, a, root)
	lastIdx := len(decl.Body) - 1
	ret, err := ast.GetAs[*ast.ReturnStmt](a, decl.Body[lastIdx])
	if err != nil {
		t.Fatalf("GetAs[*ReturnStmt]() error = %v", err)
	}
	gotType := env.TypeOf(ret.Value)
	if gotType.String() != "Int" {
		t.Errorf("return type = %s, want Int", gotType.String())
	}
}

// Scenario 6: all-paths-return analysis — an if with no else does not make
// every path reach an exit block.
func TestScenario6_AllPathsReturnAnalysis(t *testing.T) {
	a, root := fixture(t, "all_paths_return.json")
	_, decl := firstFunctionDecl(t, a, root)

	graph, err := cfg.Build(a, decl)
	if err != nil {
		t.Fatalf("cfg.Build() error = %v", err)
	}
	if graph.AllPathsReachExit() {
		t.Errorf("AllPathsReachExit() = true, want false: the implicit fall-through has no return")
	}
}

func TestFixtureNames_MatchScenarioCount(t *testing.T) {
	want := []string{
		"closure.json",
		"use_before_assignment.json",
		"numeric_unification.json",
		"attribute_error.json",
		"for_loop_target.json",
		"all_paths_return.json",
	}
	var got []string
	for _, f := range scenarios.Files {
		got = append(got, f.Name)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("scenario files = %v, want %v", got, want)
	}
}
