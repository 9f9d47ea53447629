package version

import "fmt"

// Version indicates what version of bmc the binary belongs to, set via
// -ldflags at build time.
var Version string

// GitCommit indicates which git commit the binary was built from.
var GitCommit string

// String returns a pretty string concatenation of Version and GitCommit.
func String() string {
	return fmt.Sprintf("bmc version: %s\ngit commit:  %s\n", Version, GitCommit)
}
