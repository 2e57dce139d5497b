package platform

import (
	"runtime"
	"testing"
)

func TestResolveOS(t *testing.T) {
	tests := []struct {
		goos string
		want Category
	}{
		{"linux", Linux},
		{"darwin", Macintosh},
		{"ios", Macintosh},
		{"windows", Windows},
		{"android", Android},
		{"aix", Unix},
		{"hurd", Unix},
		{"solaris", SunOS},
		{"illumos", SunOS},
		{"freebsd", BSD},
		{"openbsd", BSD},
		{"netbsd", BSD},
		{"dragonfly", BSD},
		{"plan9", Unknown},
		{"js", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := ResolveOS(tt.goos); got != tt.want {
				t.Errorf("ResolveOS(%q) = %v, want %v", tt.goos, got, tt.want)
			}
		})
	}
}

func TestResolve_MatchesRuntime(t *testing.T) {
	if Resolve() != ResolveOS(runtime.GOOS) {
		t.Errorf("Resolve() = %v, want %v", Resolve(), ResolveOS(runtime.GOOS))
	}
}

func TestCategory_Coarse(t *testing.T) {
	tests := map[Category]Category{
		Linux:     Linux,
		Macintosh: Macintosh,
		Windows:   Windows,
		Android:   Android,
		Unknown:   Unknown,
		Unix:      Unknown,
		SunOS:     Unknown,
		BSD:       Unknown,
	}
	for in, want := range tests {
		if got := in.Coarse(); got != want {
			t.Errorf("%v.Coarse() = %v, want %v", in, got, want)
		}
	}
}

func TestCategory_Family(t *testing.T) {
	for _, c := range []Category{Unknown, Linux, Macintosh, Android, Unix, SunOS, BSD} {
		if c.Family() != FamilyUnix {
			t.Errorf("%v.Family() = %v, want unix", c, c.Family())
		}
	}
	if Windows.Family() != FamilyWindows {
		t.Errorf("Windows.Family() = %v", Windows.Family())
	}
}

func TestCategory_String(t *testing.T) {
	if Macintosh.String() != "Macintosh" || SunOS.String() != "SunOS" {
		t.Errorf("unexpected names: %s %s", Macintosh, SunOS)
	}
	if Category(42).String() != "Unknown" {
		t.Errorf("out of range category = %s", Category(42))
	}
	if FamilyWindows.String() != "windows" || FamilyUnix.String() != "unix" {
		t.Errorf("unexpected family names")
	}
}
