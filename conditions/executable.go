package conditions

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type executableExists struct {
	names []string
}

// ExecutableExists gates on every name resolving to an executable: bare
// names are looked up on the search path, names containing a path
// separator are checked directly for an executable file.
func ExecutableExists(names ...string) Condition {
	return executableExists{names: names}
}

func (c executableExists) Check(_ context.Context) (bool, string, error) {
	var missing []string
	for _, name := range c.names {
		if !executableFound(name) {
			missing = append(missing, name)
		}
	}
	switch len(missing) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because executable not found: %s", missing[0]), nil
	default:
		return false, fmt.Sprintf("because following executables not found: %s", strings.Join(missing, ", ")), nil
	}
}

func executableFound(name string) bool {
	if strings.ContainsRune(name, os.PathSeparator) {
		info, err := os.Stat(name)
		return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
	}
	_, err := exec.LookPath(name)
	return err == nil
}
