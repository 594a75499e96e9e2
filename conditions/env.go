package conditions

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type envSet struct {
	names []string
}

// EnvSet gates on every named environment variable being set. A variable
// set to the empty string counts as set.
func EnvSet(names ...string) Condition {
	return envSet{names: names}
}

func (c envSet) Check(_ context.Context) (bool, string, error) {
	var missing []string
	for _, name := range c.names {
		if _, ok := os.LookupEnv(name); !ok {
			missing = append(missing, name)
		}
	}
	switch len(missing) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because variable %s not found", missing[0]), nil
	default:
		return false, fmt.Sprintf("because following variables not found: %s", strings.Join(missing, ", ")), nil
	}
}

type envNotSet struct {
	names []string
}

// EnvNotSet is the negation of EnvSet: it gates on every named variable
// being absent. Useful for suppressing cases in tagged environments
// (e.g. skip when CI is set).
func EnvNotSet(names ...string) Condition {
	return envNotSet{names: names}
}

func (c envNotSet) Check(_ context.Context) (bool, string, error) {
	var found []string
	for _, name := range c.names {
		if _, ok := os.LookupEnv(name); ok {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return true, "", nil
	case 1:
		return false, fmt.Sprintf("because variable %s was found", found[0]), nil
	default:
		return false, fmt.Sprintf("because following variables were found: %s", strings.Join(found, ", ")), nil
	}
}
