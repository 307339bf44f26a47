// Package version holds the build-time identity of the kvfs binary,
// grounded on version/version.go and version/get.go.
package version

import (
	"fmt"
	"io"
	"os"
)

// mainpkg is the canonical project import path the binary was built
// under.
var mainpkg = "github.com/rsbellis/kvfs"

// version is set to the latest release tag by hand, always suffixed by
// "+unknown"; overridden at build time via -ldflags.
var version = "v0.1.0+unknown"

// revision is filled with the VCS revision at build time via -ldflags.
var revision = ""

// Package returns the canonical project import path the binary was built
// under.
func Package() string { return mainpkg }

// Version returns the module version the running binary was built from.
func Version() string { return version }

// Revision returns the VCS revision the binary was built from, or "" if
// unset.
func Revision() string { return revision }

// FprintVersion writes a one-line version banner to w, in the form
// "<cmd> <project> <version>".
func FprintVersion(w io.Writer) {
	fmt.Fprintln(w, os.Args[0], Package(), Version())
}

// PrintVersion writes the version banner to stdout.
func PrintVersion() {
	FprintVersion(os.Stdout)
}
