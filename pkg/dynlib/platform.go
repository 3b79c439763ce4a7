package dynlib

import "runtime"

// platformDir returns the binaries/<subdir> segment of the FMI2 cross
// platform library layout for the running OS/architecture. The reference
// loader hard-codes "win64"; this generalizes it via runtime.GOOS/GOARCH,
// per the platform-resolution supplement.
func platformDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "386" {
			return "win32", nil
		}
		return "win64", nil
	case "linux":
		if runtime.GOARCH == "386" {
			return "linux32", nil
		}
		return "linux64", nil
	case "darwin":
		return "darwin64", nil
	default:
		return "", errUnsupportedPlatform(runtime.GOOS)
	}
}

// libraryExt returns the shared-library file extension for the running OS.
func libraryExt() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

type errUnsupportedPlatform string

func (e errUnsupportedPlatform) Error() string {
	return "dynlib: unsupported platform " + string(e)
}
