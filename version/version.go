// Package version reports the build identity of the ostree-tar-export
// binary.
package version

// mainpkg is the canonical import path the module was built under.
var mainpkg = "github.com/ostreetar/ostree-tar"

// version is replaced by the actual release tag at build time via
// -ldflags; the value here is used for a go-get based install.
var version = "v0.0.0+unknown"

// revision is filled with the VCS revision at link time.
var revision = ""
