// Package dynlib loads a co-simulation slave's shared library and resolves
// its FMI2 ABI symbols into an abi.Vtable, without cgo. Symbol resolution
// and call-through use github.com/ebitengine/purego, which wraps
// dlopen/dlsym (and LoadLibrary/GetProcAddress on Windows) and lets Go call
// arbitrary C function pointers directly.
package dynlib

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ebitengine/purego"

	"github.com/fmi2go/cosim-container/internal/abi"
)

// Library is a loaded slave shared object with its vtable resolved.
type Library struct {
	path     string
	handle   uintptr
	vtable   abi.Vtable
	resource string
}

// LibraryPath returns the on-disk path the slave's binaries/<platform>/
// shared object for the given root directory and identifier, matching the
// reference layout `<dir>/binaries/<platform-subdir>/<identifier>.<ext>`.
func LibraryPath(dir, identifier string) (string, error) {
	subdir, err := platformDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "binaries", subdir, identifier+libraryExt()), nil
}

// ResourceURL returns the file:// URL passed to the slave as its resource
// location, `file:///<dir>/resources`, matching fs_make_path in the
// reference loader.
func ResourceURL(dir string) string {
	return "file://" + filepath.ToSlash(filepath.Join(dir, "resources"))
}

// Load opens the shared library for identifier under dir and resolves its
// FMI2 symbols. Required symbols missing from the library are reported as
// an error; optional symbols are left nil in the returned vtable.
func Load(dir, identifier string) (*Library, error) {
	path, err := LibraryPath(dir, identifier)
	if err != nil {
		return nil, err
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dynlib: load %s: %w", path, err)
	}

	lib := &Library{path: path, handle: handle, resource: ResourceURL(dir)}
	if err := lib.resolve(); err != nil {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("dynlib: resolve symbols in %s: %w", path, err)
	}
	return lib, nil
}

// Vtable returns the resolved function table. Optional entries the library
// did not export are nil.
func (l *Library) Vtable() *abi.Vtable {
	return &l.vtable
}

// ResourceLocation returns the file:// resource URL this library was loaded
// with.
func (l *Library) ResourceLocation() string {
	return l.resource
}

// Close unloads the shared library. Further use of any function obtained
// from its vtable is undefined after Close returns.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	purego.Dlclose(l.handle)
	l.handle = 0
	return nil
}

func (l *Library) sym(name string) (uintptr, bool) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

var errMissingRequired = errors.New("dynlib: missing required symbol")

func (l *Library) resolve() error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s", errMissingRequired, field)
	}

	if addr, ok := l.sym("fmi2GetTypesPlatform"); ok {
		var fn func() uintptr
		purego.RegisterFunc(&fn, addr)
		l.vtable.GetTypesPlatform = func() string { return goString(fn()) }
	}
	if addr, ok := l.sym("fmi2GetVersion"); ok {
		var fn func() uintptr
		purego.RegisterFunc(&fn, addr)
		l.vtable.GetVersion = func() string { return goString(fn()) }
	}

	instAddr, ok := l.sym("fmi2Instantiate")
	if !ok {
		return missing("Instantiate")
	}
	l.vtable.Instantiate = bindInstantiate(instAddr)

	freeAddr, ok := l.sym("fmi2FreeInstance")
	if !ok {
		return missing("FreeInstance")
	}
	l.vtable.FreeInstance = bindFreeInstance(freeAddr)

	setupAddr, ok := l.sym("fmi2SetupExperiment")
	if !ok {
		return missing("SetupExperiment")
	}
	l.vtable.SetupExperiment = bindSetupExperiment(setupAddr)

	for name, dst := range map[string]*func(abi.Component) abi.Status{
		"fmi2EnterInitializationMode": &l.vtable.EnterInitializationMode,
		"fmi2ExitInitializationMode":  &l.vtable.ExitInitializationMode,
		"fmi2Terminate":               &l.vtable.Terminate,
		"fmi2Reset":                   &l.vtable.Reset,
	} {
		addr, ok := l.sym(name)
		if !ok {
			return missing(name)
		}
		*dst = bindComponentOnly(addr)
	}

	if addr, ok := l.sym("fmi2CancelStep"); ok {
		l.vtable.CancelStep = bindComponentOnly(addr)
	}

	getReal, ok := l.sym("fmi2GetReal")
	if !ok {
		return missing("GetReal")
	}
	l.vtable.GetReal = bindRealIO(getReal, false)

	setReal, ok := l.sym("fmi2SetReal")
	if !ok {
		return missing("SetReal")
	}
	l.vtable.SetReal = bindRealIO(setReal, true)

	getInt, ok := l.sym("fmi2GetInteger")
	if !ok {
		return missing("GetInteger")
	}
	l.vtable.GetInteger = bindIntegerIO(getInt, false)

	setInt, ok := l.sym("fmi2SetInteger")
	if !ok {
		return missing("SetInteger")
	}
	l.vtable.SetInteger = bindIntegerIO(setInt, true)

	getBool, ok := l.sym("fmi2GetBoolean")
	if !ok {
		return missing("GetBoolean")
	}
	l.vtable.GetBoolean = bindBooleanIO(getBool, false)

	setBool, ok := l.sym("fmi2SetBoolean")
	if !ok {
		return missing("SetBoolean")
	}
	l.vtable.SetBoolean = bindBooleanIO(setBool, true)

	doStep, ok := l.sym("fmi2DoStep")
	if !ok {
		return missing("DoStep")
	}
	l.vtable.DoStep = bindDoStep(doStep)

	getRealStatus, ok := l.sym("fmi2GetRealStatus")
	if !ok {
		return missing("GetRealStatus")
	}
	l.vtable.GetRealStatus = bindGetRealStatus(getRealStatus)

	getBoolStatus, ok := l.sym("fmi2GetBooleanStatus")
	if !ok {
		return missing("GetBooleanStatus")
	}
	l.vtable.GetBooleanStatus = bindGetBooleanStatus(getBoolStatus)

	if addr, ok := l.sym("fmi2SetDebugLogging"); ok {
		l.vtable.SetDebugLogging = bindSetDebugLogging(addr)
	}

	return nil
}
