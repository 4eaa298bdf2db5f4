package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"audioquality/internal/deps"
	"audioquality/internal/services"
)

// CheckFFmpeg verifies the probing binary resolves and reports a version.
func CheckFFmpeg(ctx context.Context, binary string) Result {
	status := deps.CheckFFmpeg(ctx, binary)
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	return Result{Name: status.Name, Passed: true, Detail: fmt.Sprintf("%s (%s)", status.Version, status.Path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckReadable wraps Readable as a Result named after the path.
func CheckReadable(path string) Result {
	if err := Readable(path); err != nil {
		return Result{Name: path, Detail: err.Error()}
	}
	return Result{Name: path, Passed: true, Detail: "readable"}
}

// Readable returns nil when path is a regular file the current user may read.
func Readable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return services.Wrap(services.ErrNotFound, "preflight", "stat", path, err)
		}
		return services.Wrap(services.ErrValidation, "preflight", "stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return services.Wrap(services.ErrValidation, "preflight", "stat", path+" is not a regular file", nil)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return services.Wrap(services.ErrValidation, "preflight", "access", path+" is not readable", err)
	}
	return nil
}
