package dynlib

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/fmi2go/cosim-container/internal/abi"
)

// fmi2 represents booleans as C int (0/1), not a native bool type, and
// reports status as a small int enum matching abi.Status's own ordering.
// These bindings marshal between the two at the call boundary so every
// other package only ever sees Go bool/abi.Status.

func cBool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func goBool(v uintptr) bool { return v != 0 }

func goStatus(v uintptr) abi.Status { return abi.Status(int32(v)) }

// cString allocates a null-terminated copy of s and returns it as a
// uintptr suitable for passing as a C `const char*` argument. The backing
// array is kept alive for the lifetime of the process (slave libraries may
// retain the pointer, e.g. for the GUID), matching the reference loader's
// own strdup-and-never-free handling of instance/identifier/guid strings.
func cString(s string) uintptr {
	b := make([]byte, len(s)+1)
	copy(b, s)
	retain(b)
	return uintptr(unsafe.Pointer(&b[0]))
}

// retained holds every value whose address is handed to a slave, so the
// garbage collector never frees memory a slave may still point at.
var (
	retainedMu sync.Mutex
	retained   []any
)

func retain(v any) {
	retainedMu.Lock()
	retained = append(retained, v)
	retainedMu.Unlock()
}

// goString reads a null-terminated C string starting at ptr. It returns ""
// for a null pointer.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var b []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Pointer(ptr + uintptr(i)))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

// callbackRecord is the C-layout mirror of fmi2CallbackFunctions: four
// function pointers followed by the opaque componentEnvironment pointer.
type callbackRecord struct {
	logger               uintptr
	allocateMemory       uintptr
	freeMemory           uintptr
	stepFinished         uintptr
	componentEnvironment uintptr
}

// buildCallbacks allocates a pinned callbackRecord wired to cb.Logger via a
// purego trampoline. The allocate/free memory slots are left null: a Go
// host doesn't hand out a malloc/free pair to the embedded slave, and every
// FMI2 reference slave tolerates a null allocator when it never calls back
// into it for co-simulation variables (only needed for FMUstate
// (de)serialization, which this composite does not support).
func buildCallbacks(cb abi.CallbackFunctions) *callbackRecord {
	rec := &callbackRecord{}
	if cb.Logger != nil {
		// fmi2CallbackLogger is variadic in C; purego.NewCallback only
		// supports a fixed signature, so the printf-style trailing
		// arguments are dropped and the message is logged verbatim.
		trampoline := purego.NewCallback(func(_ uintptr, instanceName *byte, status int32, category, message *byte) uintptr {
			cb.Logger(goString(uintptr(unsafe.Pointer(instanceName))), goString(uintptr(unsafe.Pointer(category))), abi.Status(status), goString(uintptr(unsafe.Pointer(message))))
			return 0
		})
		rec.logger = trampoline
	}
	rec.componentEnvironment = uintptr(unsafe.Pointer(rec))
	retain(rec)
	return rec
}

func bindInstantiate(addr uintptr) func(string, abi.Type, string, string, abi.CallbackFunctions, bool, bool) (abi.Component, bool) {
	var fn func(uintptr, int32, uintptr, uintptr, uintptr, uintptr, uintptr) uintptr
	purego.RegisterFunc(&fn, addr)
	return func(instanceName string, fmuType abi.Type, guid, resourceLocation string, callbacks abi.CallbackFunctions, visible, loggingOn bool) (abi.Component, bool) {
		rec := buildCallbacks(callbacks)
		comp := fn(
			cString(instanceName),
			int32(fmuType),
			cString(guid),
			cString(resourceLocation),
			uintptr(unsafe.Pointer(rec)),
			cBool(visible),
			cBool(loggingOn),
		)
		return abi.Component(comp), comp != 0
	}
}

func bindFreeInstance(addr uintptr) func(abi.Component) {
	var fn func(uintptr)
	purego.RegisterFunc(&fn, addr)
	return func(c abi.Component) { fn(uintptr(c)) }
}

func bindSetupExperiment(addr uintptr) func(abi.Component, bool, float64, float64, bool, float64) abi.Status {
	var fn func(uintptr, uintptr, float64, float64, uintptr, float64) uintptr
	purego.RegisterFunc(&fn, addr)
	return func(c abi.Component, toleranceDefined bool, tolerance, startTime float64, stopTimeDefined bool, stopTime float64) abi.Status {
		return goStatus(fn(uintptr(c), cBool(toleranceDefined), tolerance, startTime, cBool(stopTimeDefined), stopTime))
	}
}

func bindComponentOnly(addr uintptr) func(abi.Component) abi.Status {
	var fn func(uintptr) uintptr
	purego.RegisterFunc(&fn, addr)
	return func(c abi.Component) abi.Status { return goStatus(fn(uintptr(c))) }
}

func bindRealIO(addr uintptr, _write bool) func(abi.Component, []abi.ValueReference, []float64) abi.Status {
	return func(c abi.Component, vr []abi.ValueReference, value []float64) abi.Status {
		if len(vr) == 0 {
			return abi.OK
		}
		r1, _, _ := purego.SyscallN(addr,
			uintptr(c),
			uintptr(unsafe.Pointer(&vr[0])),
			uintptr(len(vr)),
			uintptr(unsafe.Pointer(&value[0])),
		)
		return goStatus(r1)
	}
}

func bindIntegerIO(addr uintptr, _write bool) func(abi.Component, []abi.ValueReference, []int32) abi.Status {
	return func(c abi.Component, vr []abi.ValueReference, value []int32) abi.Status {
		if len(vr) == 0 {
			return abi.OK
		}
		r1, _, _ := purego.SyscallN(addr,
			uintptr(c),
			uintptr(unsafe.Pointer(&vr[0])),
			uintptr(len(vr)),
			uintptr(unsafe.Pointer(&value[0])),
		)
		return goStatus(r1)
	}
}

func bindBooleanIO(addr uintptr, write bool) func(abi.Component, []abi.ValueReference, []bool) abi.Status {
	return func(c abi.Component, vr []abi.ValueReference, value []bool) abi.Status {
		if len(vr) == 0 {
			return abi.OK
		}
		cvals := make([]int32, len(value))
		if write {
			for i, v := range value {
				if v {
					cvals[i] = 1
				}
			}
		}
		r1, _, _ := purego.SyscallN(addr,
			uintptr(c),
			uintptr(unsafe.Pointer(&vr[0])),
			uintptr(len(vr)),
			uintptr(unsafe.Pointer(&cvals[0])),
		)
		if !write {
			for i, v := range cvals {
				value[i] = v != 0
			}
		}
		return goStatus(r1)
	}
}

func bindDoStep(addr uintptr) func(abi.Component, float64, float64, bool) abi.Status {
	var fn func(uintptr, float64, float64, uintptr) uintptr
	purego.RegisterFunc(&fn, addr)
	return func(c abi.Component, currentCommunicationPoint, communicationStepSize float64, noSetFMUStatePriorToCurrentPoint bool) abi.Status {
		return goStatus(fn(uintptr(c), currentCommunicationPoint, communicationStepSize, cBool(noSetFMUStatePriorToCurrentPoint)))
	}
}

func bindGetRealStatus(addr uintptr) func(abi.Component, abi.StatusKind) (float64, abi.Status) {
	return func(c abi.Component, kind abi.StatusKind) (float64, abi.Status) {
		var value float64
		r1, _, _ := purego.SyscallN(addr, uintptr(c), uintptr(kind), uintptr(unsafe.Pointer(&value)))
		return value, goStatus(r1)
	}
}

func bindGetBooleanStatus(addr uintptr) func(abi.Component, abi.StatusKind) (bool, abi.Status) {
	return func(c abi.Component, kind abi.StatusKind) (bool, abi.Status) {
		var value int32
		r1, _, _ := purego.SyscallN(addr, uintptr(c), uintptr(kind), uintptr(unsafe.Pointer(&value)))
		return goBool(uintptr(value)), goStatus(r1)
	}
}

func bindSetDebugLogging(addr uintptr) func(abi.Component, bool, []string) abi.Status {
	var fn func(uintptr, uintptr, uintptr, uintptr) uintptr
	purego.RegisterFunc(&fn, addr)
	return func(c abi.Component, loggingOn bool, categories []string) abi.Status {
		if len(categories) == 0 {
			return goStatus(fn(uintptr(c), cBool(loggingOn), 0, 0))
		}
		ptrs := make([]uintptr, len(categories))
		for i, cat := range categories {
			ptrs[i] = cString(cat)
		}
		return goStatus(fn(uintptr(c), cBool(loggingOn), uintptr(len(categories)), uintptr(unsafe.Pointer(&ptrs[0]))))
	}
}
