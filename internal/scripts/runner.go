// Package scripts runs user JavaScript hooks with goja.
package scripts

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/errdef"
	"github.com/unkn0wn-root/harview/internal/fieldfmt"
)

// ReduceFuncName is the global a reducer script must define:
//
//	function reduceTuples(acc, tuple, index, array) { ... return acc; }
//
// Tuples are [label, value] arrays.
const ReduceFuncName = "reduceTuples"

// Reducer wraps a compiled reduceTuples hook. A goja runtime is not safe for
// concurrent use, so calls are serialised.
type Reducer struct {
	name string
	mu   sync.Mutex
	vm   *goja.Runtime
	fn   goja.Callable
	err  error
}

// LoadReducer reads and compiles the script at path.
func LoadReducer(path string) (*Reducer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read reducer script %s", path)
	}
	return CompileReducer(path, string(data))
}

// CompileReducer evaluates source and looks up its reduceTuples function.
func CompileReducer(name, source string) (*Reducer, error) {
	script := normalizeScript(source)
	if script == "" {
		return nil, errdef.New(errdef.CodeScript, "reducer script %s is empty", name)
	}
	vm := goja.New()
	bindCommon(vm, name)
	if _, err := vm.RunScript(name, script); err != nil {
		return nil, errdef.Wrap(errdef.CodeScript, err, "execute reducer script %s", name)
	}
	fn, ok := goja.AssertFunction(vm.Get(ReduceFuncName))
	if !ok {
		return nil, errdef.New(errdef.CodeScript, "reducer script %s does not define %s", name, ReduceFuncName)
	}
	return &Reducer{name: name, vm: vm, fn: fn}, nil
}

// Func adapts the script to the details reducer signature. A failing call
// keeps the row unchanged and records the error; see Err.
func (r *Reducer) Func() details.Reducer {
	return func(acc []details.KV, kv details.KV, index int, all []details.KV) []details.KV {
		out, err := r.call(acc, kv, index, all)
		if err != nil {
			r.fail(err)
			return append(acc, kv)
		}
		return out
	}
}

// Err returns the first error raised while reducing.
func (r *Reducer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Reducer) fail(err error) {
	r.mu.Lock()
	first := r.err == nil
	if first {
		r.err = err
	}
	r.mu.Unlock()
	if first {
		log.Printf("reducer %s: %v", r.name, err)
	}
}

func (r *Reducer) call(acc []details.KV, kv details.KV, index int, all []details.KV) ([]details.KV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.fn(goja.Undefined(),
		r.tuples(acc),
		r.vm.NewArray(kv.Label, kv.Value),
		r.vm.ToValue(index),
		r.tuples(all),
	)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeScript, err, "call %s", ReduceFuncName)
	}
	return fromTuples(res)
}

func (r *Reducer) tuples(kvs []details.KV) *goja.Object {
	items := make([]any, len(kvs))
	for i, kv := range kvs {
		items[i] = r.vm.NewArray(kv.Label, kv.Value)
	}
	return r.vm.NewArray(items...)
}

func fromTuples(v goja.Value) ([]details.KV, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, errdef.New(errdef.CodeScript, "%s returned no accumulator", ReduceFuncName)
	}
	list, ok := v.Export().([]any)
	if !ok {
		return nil, errdef.New(errdef.CodeScript, "%s must return an array, got %T", ReduceFuncName, v.Export())
	}
	out := make([]details.KV, 0, len(list))
	for i, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) == 0 {
			return nil, errdef.New(errdef.CodeScript, "tuple %d is not a [label, value] array", i)
		}
		kv := details.KV{Label: fieldfmt.Text(pair[0])}
		if len(pair) > 1 {
			kv.Value = fieldfmt.Text(pair[1])
		}
		out = append(out, kv)
	}
	return out, nil
}

func bindCommon(vm *goja.Runtime, name string) {
	logf := func(level string) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			log.Printf("%s %s: %s", name, level, strings.Join(parts, " "))
			return goja.Undefined()
		}
	}
	console := map[string]func(goja.FunctionCall) goja.Value{
		"log":   logf("log"),
		"warn":  logf("warn"),
		"error": logf("error"),
	}
	vm.Set("console", console)
}

func normalizeScript(body string) string {
	script := strings.TrimSpace(body)
	if script == "" {
		return script
	}

	if strings.HasPrefix(script, "{%") && strings.HasSuffix(script, "%}") {
		script = strings.TrimSpace(script[2 : len(script)-2])
	}

	return script
}
