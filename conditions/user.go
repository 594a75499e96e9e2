package conditions

import (
	"context"
	"fmt"
	"os"
	"os/user"
)

type isRoot struct{}

// Root gates on the process running with an effective uid of 0.
func Root() Condition {
	return isRoot{}
}

func (isRoot) Check(_ context.Context) (bool, string, error) {
	if os.Geteuid() == 0 {
		return true, "", nil
	}
	return false, "because this case should run with root", nil
}

type isUser struct {
	name string
}

// User gates on the process running as the named user.
func User(name string) Condition {
	return isUser{name: name}
}

func (c isUser) Check(_ context.Context) (bool, string, error) {
	current, err := user.Current()
	if err != nil {
		return false, fmt.Sprintf("because current user can not be determined: %v", err), err
	}
	if current.Username == c.name {
		return true, "", nil
	}
	return false, fmt.Sprintf("because this case should run with user %s", c.name), nil
}

type inGroup struct {
	name string
}

// Group gates on the process's user belonging to the named group.
func Group(name string) Condition {
	return inGroup{name: name}
}

func (c inGroup) Check(_ context.Context) (bool, string, error) {
	current, err := user.Current()
	if err != nil {
		return false, fmt.Sprintf("because current user can not be determined: %v", err), err
	}
	gids, err := current.GroupIds()
	if err != nil {
		return false, fmt.Sprintf("because groups of user %s can not be listed: %v", current.Username, err), err
	}
	for _, gid := range gids {
		group, err := user.LookupGroupId(gid)
		if err != nil {
			continue
		}
		if group.Name == c.name {
			return true, "", nil
		}
	}
	return false, fmt.Sprintf("because this case should run user in group %s", c.name), nil
}
