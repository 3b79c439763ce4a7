package dynlib

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryPath_JoinsPlatformDirAndExtension(t *testing.T) {
	path, err := LibraryPath("/models/engine", "engine")
	require.NoError(t, err)

	subdir, err := platformDir()
	require.NoError(t, err)
	assert.Equal(t, "/models/engine/binaries/"+subdir+"/engine"+libraryExt(), path)
}

func TestResourceURL_PointsAtResourcesSubdir(t *testing.T) {
	url := ResourceURL("/models/engine")
	assert.Equal(t, "file:///models/engine/resources", url)
}

func TestPlatformDir_MatchesRunningOS(t *testing.T) {
	subdir, err := platformDir()
	require.NoError(t, err)

	switch runtime.GOOS {
	case "linux":
		if runtime.GOARCH == "386" {
			assert.Equal(t, "linux32", subdir)
		} else {
			assert.Equal(t, "linux64", subdir)
		}
	case "darwin":
		assert.Equal(t, "darwin64", subdir)
	case "windows":
		if runtime.GOARCH == "386" {
			assert.Equal(t, "win32", subdir)
		} else {
			assert.Equal(t, "win64", subdir)
		}
	}
}

func TestLibraryExt_MatchesRunningOS(t *testing.T) {
	ext := libraryExt()
	switch runtime.GOOS {
	case "windows":
		assert.Equal(t, ".dll", ext)
	case "darwin":
		assert.Equal(t, ".dylib", ext)
	default:
		assert.Equal(t, ".so", ext)
	}
}

func TestLibrary_Close_WithoutHandleIsNoop(t *testing.T) {
	l := &Library{}
	assert.NoError(t, l.Close())
}
