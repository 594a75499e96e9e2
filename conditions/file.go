package conditions

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type fileExists struct {
	paths []string
}

// FileExists gates on every path naming an existing regular file. A
// directory at the path does not satisfy it; use PathExists for that.
func FileExists(paths ...string) Condition {
	return fileExists{paths: paths}
}

func (c fileExists) Check(_ context.Context) (bool, string, error) {
	var missing []string
	for _, path := range c.paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			missing = append(missing, path)
		}
	}
	switch len(missing) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because file not found: %s", missing[0]), nil
	default:
		return false, fmt.Sprintf("because following files not found: %s", strings.Join(missing, ", ")), nil
	}
}

type pathExists struct {
	paths []string
}

// PathExists gates on every path naming an existing filesystem entry of
// any kind.
func PathExists(paths ...string) Condition {
	return pathExists{paths: paths}
}

func (c pathExists) Check(_ context.Context) (bool, string, error) {
	var missing []string
	for _, path := range c.paths {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	switch len(missing) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because path not found: %s", missing[0]), nil
	default:
		return false, fmt.Sprintf("because following paths not found: %s", strings.Join(missing, ", ")), nil
	}
}
