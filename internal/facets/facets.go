// Package facets compiles operator-defined facet buckets, written as CEL
// expressions over a numeric `value`, into listview facets. Deployments add
// table-specific buckets from configuration without a code change.
package facets

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"docuflow/pkg/listview"
)

// Definition declares one configured facet: the table it extends, the
// numeric field it reads and its named buckets.
type Definition struct {
	Table   string      `yaml:"table" json:"table"`
	Name    string      `yaml:"name" json:"name"`
	Field   string      `yaml:"field" json:"field"`
	Buckets []BucketDef `yaml:"buckets" json:"buckets"`
}

// BucketDef is one named bucket. Expr is a CEL expression over `value`, e.g.
// `value > 20.0` or `value >= 5.0 && value < 20.0`.
type BucketDef struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
}

// Compiler compiles bucket expressions against a fixed environment exposing
// the numeric `value` variable.
type Compiler struct {
	env *cel.Env
}

// NewCompiler creates a compiler with the facet environment.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("value", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("facet env: %w", err)
	}
	return &Compiler{env: env}, nil
}

// Compile turns a definition into a listview.Facet with expression-backed
// buckets. Compilation errors carry the facet and bucket names.
func (c *Compiler) Compile(def Definition) (listview.Facet, error) {
	facet := listview.Facet{
		Name:  def.Name,
		Field: def.Field,
	}
	for _, b := range def.Buckets {
		prg, err := c.compileExpr(b.Expr)
		if err != nil {
			return listview.Facet{}, fmt.Errorf("facet %q bucket %q: %w", def.Name, b.Name, err)
		}
		facet.Buckets = append(facet.Buckets, listview.Bucket{
			Name: b.Name,
			Test: evalFunc(prg),
		})
	}
	return facet, nil
}

// CompileAll compiles every definition, grouped by table name.
func (c *Compiler) CompileAll(defs []Definition) (map[string][]listview.Facet, error) {
	out := make(map[string][]listview.Facet)
	for _, def := range defs {
		facet, err := c.Compile(def)
		if err != nil {
			return nil, err
		}
		out[def.Table] = append(out[def.Table], facet)
	}
	return out, nil
}

func (c *Compiler) compileExpr(expr string) (cel.Program, error) {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("expression must yield bool, got %s", ast.OutputType())
	}
	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}
	return prg, nil
}

// evalFunc wraps a compiled program as a total predicate: evaluation errors
// count as non-membership, never a failure of the filter pass.
func evalFunc(prg cel.Program) func(float64) bool {
	return func(v float64) bool {
		out, _, err := prg.Eval(map[string]interface{}{"value": v})
		if err != nil {
			return false
		}
		result, ok := out.Value().(bool)
		return ok && result
	}
}
