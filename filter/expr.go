package filter

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/apictl/models"
)

// DefaultCacheSize is the number of compiled filters kept by NewCompiler
const DefaultCacheSize = 100

// Filter is a compiled boolean expression over deserialized values
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache sets the compiled filter cache size. Zero disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		} else {
			c.cache = nil
		}
	}
}

// WithFunctions adds helper functions available to every expression
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler compiles expressions into filters
type Compiler struct {
	helpers map[string]any
	cache   *lruCache
}

// NewCompiler creates a compiler with a DefaultCacheSize cache
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		helpers: createHelperFunctions(),
		cache:   newLRUCache(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = NewCompiler()

// Compile compiles expression with the shared default compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles an expression into a filter. The expression must
// evaluate to a boolean.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(), // item fields are only known at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &Filter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}
	return filter, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Expression returns the source expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against item. Mapping fields are exposed as
// variables, models are exposed through their JSON form and the item
// itself is always available as `it`.
func (f *Filter) Match(item any) (bool, error) {
	return f.match(item, -1)
}

// Apply returns the items that match, in their original order
func (f *Filter) Apply(items []any) ([]any, error) {
	matches := make([]any, 0, len(items))
	for i, item := range items {
		ok, err := f.match(item, i)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (f *Filter) match(item any, index int) (bool, error) {
	env, err := f.environment(item)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Index:      index,
			Reason:     "failed to expose item fields",
			Err:        err,
		}
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Index:      index,
			Reason:     err.Error(),
			Err:        err,
		}
	}
	return result.(bool), nil
}

// environment builds the runtime variables for item
func (f *Filter) environment(item any) (map[string]any, error) {
	attrs, err := attributes(item)
	if err != nil {
		return nil, err
	}

	env := make(map[string]any, len(f.helpers)+len(attrs)+3)
	maps.Copy(env, f.helpers)
	maps.Copy(env, attrs)
	env["it"] = item
	env["has"] = func(key string) bool {
		_, ok := attrs[key]
		return ok
	}
	env["hasTag"] = createHasTagFunc(attrs["tags"])
	return env, nil
}

// attributes returns the fields of item as a mapping, or nil for scalars
func attributes(item any) (map[string]any, error) {
	switch v := item.(type) {
	case nil, string, bool, int64, float64, time.Time:
		return nil, nil
	case map[string]any:
		return v, nil
	case []any:
		return nil, nil
	}

	b, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var attrs map[string]any
	if err := json.Unmarshal(b, &attrs); err != nil {
		// marshals to something other than an object
		return nil, nil
	}
	return attrs, nil
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(v any) int {
		t, ok := toTime(v)
		if !ok {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["parseDate"] = func(s string) time.Time {
		t, _ := models.ParseTime(s)
		return t
	}
	funcs["before"] = func(v any, ref time.Time) bool {
		t, ok := toTime(v)
		return ok && t.Before(ref)
	}
	funcs["after"] = func(v any, ref time.Time) bool {
		t, ok := toTime(v)
		return ok && t.After(ref)
	}
	// String helpers. contains, startsWith and endsWith are expr operators,
	// these are their case-insensitive function forms.
	funcs["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper
	funcs["now"] = time.Now

	// per-item helpers, replaced at runtime
	funcs["has"] = func(string) bool { return false }
	funcs["hasTag"] = func(string) bool { return false }

	return funcs
}

// toTime accepts time.Time values and ISO-8601 strings
func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := models.ParseTime(t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

// createHasTagFunc matches tag names case-insensitively. Tags may be plain
// strings or objects with a name field.
func createHasTagFunc(tags any) func(string) bool {
	list, _ := tags.([]any)
	names := make([]string, 0, len(list))
	for _, tag := range list {
		switch t := tag.(type) {
		case string:
			names = append(names, strings.ToLower(t))
		case map[string]any:
			if name, ok := t["name"].(string); ok {
				names = append(names, strings.ToLower(name))
			}
		}
	}

	return func(tag string) bool {
		return slices.Contains(names, strings.ToLower(tag))
	}
}

// String implements fmt.Stringer
func (f *Filter) String() string {
	return fmt.Sprintf("filter(%s)", f.expression)
}
