package ostreetar

// repoConfigContents is the exact literal byte content of the repo config
// file, independent of format version.
const repoConfigContents = "[core]\nrepo_version=1\nmode=bare-split-xattrs\n"

// ancestorDirs lists the ancestor directories of sysroot/ostree/repo/objects,
// top-down, excluding "/" and the empty path (scaffold step 1).
var ancestorDirs = []string{
	"sysroot",
	"sysroot/ostree",
	"sysroot/ostree/repo",
	"sysroot/ostree/repo/objects",
}

// fixedSubdirs lists the fixed subdirectories under sysroot/ostree/repo/, in
// emission order (scaffold step 3).
var fixedSubdirs = []string{
	"extensions",
	"refs",
	"refs/heads",
	"refs/mirrors",
	"refs/remotes",
	"state",
	"tmp",
	"tmp/cache",
}

// hexDigits is used to emit the 256 "00".."ff" object-prefix directories in
// lexical order (scaffold step 2).
const hexDigits = "0123456789abcdef"

// writeScaffold emits the fixed repository scaffold and config file exactly
// once per run; subsequent calls are no-ops.
func (s *runState) writeScaffold() error {
	if s.wroteScaffold {
		return nil
	}
	s.wroteScaffold = true

	for _, d := range ancestorDirs {
		if err := defaultDirEntry(s.tw, d); err != nil {
			return err
		}
	}

	for _, hi := range hexDigits {
		for _, lo := range hexDigits {
			if err := defaultDirEntry(s.tw, objectsRoot+"/"+string(hi)+string(lo)); err != nil {
				return err
			}
		}
	}

	for _, d := range fixedSubdirs {
		if err := defaultDirEntry(s.tw, repoRoot+"/"+d); err != nil {
			return err
		}
	}

	if s.opts.FormatVersion == 0 {
		if err := defaultDirEntry(s.tw, repoRoot+"/xattrs"); err != nil {
			return err
		}
	}

	return defaultDataEntry(s.tw, configPath(s.opts.FormatVersion), []byte(repoConfigContents))
}
