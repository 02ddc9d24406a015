// Package vm wires together the register-machine interpreter (package
// interp) and the JIT front-end/type-inference pass (package jit) into a
// single instance an embedder constructs once: the VM owns the shared
// Interpreter state (string table, prototypes), the top-level global
// environment, and the profile-driven decision of when a CodeBlock is hot
// enough to promote past the interpreter (spec.md §2, §4.3).
package vm

import (
	"io"
	"os"
	"sync"

	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/interp"
	"github.com/escargot-js/escargot/ir"
	"github.com/escargot-js/escargot/jit"
	"github.com/escargot-js/escargot/object"
	"github.com/escargot-js/escargot/value"
)

// VM is one engine instance: an Interpreter plus the JIT promotion
// bookkeeping layered on top of it. The zero value is not usable; build
// one with New.
type VM struct {
	cfg Config
	it  *interp.Interpreter

	globalEnv *interp.Environment

	// Stdout is where HostFunction intrinsics (console.log) write.
	// Defaults to os.Stdout; tests substitute a bytes.Buffer.
	Stdout io.Writer

	mu     sync.Mutex
	calls  map[*bytecode.CodeBlock]int
	graphs map[*bytecode.CodeBlock]*ir.Graph
	bailed map[*bytecode.CodeBlock]bool
}

// New constructs a VM from cfg, or from defaultConfig() if cfg is nil
// (mirroring NewWazeroEngineWithConfig's nil-config pattern). It builds
// the Object/Array/Function prototype chain and the minimal global
// environment (see Global) a host program runs against.
func New(cfg *Config) *VM {
	resolved := resolveConfig(cfg)

	strings := object.NewDefaultStringTable()
	it := interp.NewInterpreter(strings)
	it.MaxStackDepth = resolved.MaxStackDepth

	objectProto := object.NewObject(object.RootShape(), nil)
	it.ObjectProto = value.Pointer(objectProto)
	arrayProto := object.NewObject(object.RootShape(), it.ObjectProto)
	it.ArrayProto = value.Pointer(arrayProto)
	functionProto := object.NewObject(object.RootShape(), it.ObjectProto)
	it.FunctionProto = value.Pointer(functionProto)

	vm := &VM{
		cfg:    resolved,
		it:     it,
		Stdout: os.Stdout,
		calls:  make(map[*bytecode.CodeBlock]int),
		graphs: make(map[*bytecode.CodeBlock]*ir.Graph),
		bailed: make(map[*bytecode.CodeBlock]bool),
	}
	vm.globalEnv = vm.newGlobalEnvironment()
	return vm
}

// Interpreter exposes the VM's shared interp.Interpreter, letting a
// caller drive interp.Execute directly against a nested CodeBlock (e.g.
// a closure's Call, or a test harness) without duplicating prototype
// wiring.
func (vm *VM) Interpreter() *interp.Interpreter {
	return vm.it
}

// Run executes cb to completion as a top-level program or a standalone
// function call: paramNames/this/args bind exactly as interp.Execute
// documents, with the VM's global environment as cb's lexical parent.
// Every call accumulates profile data toward JITThreshold; once a
// CodeBlock's hottest site crosses it, Run attempts a one-time front-end
// compilation before falling through to the interpreter regardless of
// outcome (see maybePromote) — this engine's machine-code back-end is
// explicitly out of scope (SPEC_FULL.md §5 Non-goals: "the machine-code
// emission back-end"), so a successful promotion only means the ESGraph
// now exists and is logged for inspection (see Graph), not that Run took
// a different execution path.
func (vm *VM) Run(cb *bytecode.CodeBlock, paramNames []string, this value.TaggedValue, args []value.TaggedValue) (value.TaggedValue, error) {
	vm.maybePromote(cb)
	return interp.Execute(vm.it, cb, paramNames, vm.globalEnv, this, args)
}

// Graph returns the ESGraph the VM built for cb, and whether one exists —
// nil/false before cb has crossed JITThreshold, after a bail-out, or when
// EnableJIT is false. Exposed for cmd/escargot's debug REPL and for tests
// asserting promotion actually occurred.
func (vm *VM) Graph(cb *bytecode.CodeBlock) (*ir.Graph, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	g, ok := vm.graphs[cb]
	return g, ok
}

// maybePromote is the OSR-exit-producing half of JIT promotion: cb's
// invocation count (this VM's own Run call tally, per SPEC_FULL.md §1.3's
// "interpreter invocation count before front-end compilation is
// attempted") or any of its loop profile sites reaching JITThreshold hits
// triggers one promotion attempt, never retried — a bail-out here, or a
// successful build, both latch so every later Run on the same CodeBlock
// is a cheap map lookup. BuildGraph/InferTypes both return a plain bool
// rather than an error for "no ESIR form applies" (spec.md §4.3/§4.4:
// bail-out must be lossless), which doubles as this engine's OSR-exit
// signal — cb simply keeps running under the interpreter exactly as it
// always has.
func (vm *VM) maybePromote(cb *bytecode.CodeBlock) {
	if !vm.cfg.EnableJIT {
		return
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.bailed[cb] || vm.graphs[cb] != nil {
		return
	}
	vm.calls[cb]++
	if vm.calls[cb] < vm.cfg.JITThreshold && !hotEnough(cb, vm.cfg.JITThreshold) {
		return
	}

	graph, ok := jit.BuildGraph(cb)
	if !ok {
		debugf("vm: %s front-end bailed, staying interpreted (OSR-exit)", cb.Name)
		vm.bailed[cb] = true
		return
	}
	if !jit.InferTypes(graph) {
		debugf("vm: %s type-inference bailed, staying interpreted (OSR-exit)", cb.Name)
		vm.bailed[cb] = true
		return
	}

	debugf("vm: %s promoted\n%s", cb.Name, graph.String())
	vm.graphs[cb] = graph
}

// hotEnough reports whether any of cb's profile sites has accumulated at
// least threshold hits.
func hotEnough(cb *bytecode.CodeBlock, threshold int) bool {
	for i := range cb.Profiles {
		if cb.Profiles[i].HitCount >= threshold {
			return true
		}
	}
	return false
}
