//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package platform

import "os"

func nodeName() (string, error) {
	return os.Hostname()
}
