//go:build windows

package platform

import "golang.org/x/sys/windows"

func nodeName() (string, error) {
	return windows.ComputerName()
}
