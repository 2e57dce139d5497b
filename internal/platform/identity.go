package platform

import (
	"os"
	"os/user"
)

// Username returns the login name of the current user. It falls back to
// $USER or %USERNAME% when the user database is unavailable.
func Username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// ComputerName returns the network name of the host.
func ComputerName() string {
	if name, err := nodeName(); err == nil && name != "" {
		return name
	}
	name, _ := os.Hostname()
	return name
}
