package platform

import "runtime"

// Category is the normalized operating system classification.
type Category int

const (
	// Unknown is returned for identifiers missing from the resolver table.
	Unknown Category = iota
	Linux
	Macintosh
	Windows
	Android
	Unix
	SunOS
	BSD
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case Linux:
		return "Linux"
	case Macintosh:
		return "Macintosh"
	case Windows:
		return "Windows"
	case Android:
		return "Android"
	case Unix:
		return "Unix"
	case SunOS:
		return "SunOS"
	case BSD:
		return "BSD"
	default:
		return "Unknown"
	}
}

// Coarse narrows the category to the five-value scheme
// {Linux, Macintosh, Windows, Android, Unknown}.
// Unix, SunOS and BSD have no coarse counterpart and narrow to Unknown.
func (c Category) Coarse() Category {
	switch c {
	case Linux, Macintosh, Windows, Android:
		return c
	default:
		return Unknown
	}
}

// Family is the dispatch variant a category belongs to.
type Family int

const (
	// FamilyUnix covers every category that ships POSIX-style utilities.
	FamilyUnix Family = iota
	// FamilyWindows covers Windows only.
	FamilyWindows
)

// String returns the family name.
func (f Family) String() string {
	if f == FamilyWindows {
		return "windows"
	}
	return "unix"
}

// Family returns the dispatch variant for the category.
// Unknown systems are treated as Unix-family: only Windows lacks the
// POSIX utilities.
func (c Category) Family() Family {
	if c == Windows {
		return FamilyWindows
	}
	return FamilyUnix
}

// bsdStyle reports whether the category ships BSD userland utilities,
// which lack GNU options such as `df -T` and `ps --sort`.
func (c Category) bsdStyle() bool {
	return c == Macintosh || c == BSD
}

// osCategories maps Go's runtime.GOOS identifiers to categories.
var osCategories = map[string]Category{
	"linux":     Linux,
	"darwin":    Macintosh,
	"ios":       Macintosh,
	"windows":   Windows,
	"android":   Android,
	"aix":       Unix,
	"hurd":      Unix,
	"solaris":   SunOS,
	"illumos":   SunOS,
	"freebsd":   BSD,
	"openbsd":   BSD,
	"netbsd":    BSD,
	"dragonfly": BSD,
}

// Resolve classifies the operating system the process is running on.
func Resolve() Category {
	return ResolveOS(runtime.GOOS)
}

// ResolveOS classifies an OS identifier in runtime.GOOS form.
func ResolveOS(goos string) Category {
	if c, ok := osCategories[goos]; ok {
		return c
	}
	return Unknown
}
