package suggest

// DefaultNames is the ordered name table applied to every file.
//
// "errors" appears once: it covers redirected stderr whatever produced it.
//
//nolint:gochecknoglobals // Rule table
var DefaultNames = []NameRule{
	// editor recovery
	{Exact("dead.letter"), "unsent mail saved by an editor"},
	{MustPattern(`^#.+#$`), "editor auto-save file"},

	// redirected output and errors
	{Exact("nohup.out"), "output captured by nohup"},
	{Exact("errors"), "redirected error output"},
	{Exact("out"), "redirected output"},
	{Exact("typescript"), "script(1) session log"},

	// generated build files
	{Exact("a.out"), "default compiler output"},
	{Exact("config.log"), "autoconf log"},
	{Exact("gmon.out"), "gprof profile data"},

	// core dumps
	{Exact("core"), "core dump"},
	{MustPattern(`^core\.[0-9]+$`), "core dump"},
	{MustPattern(`^vgcore\.[0-9]+$`), "valgrind core dump"},

	// screenshots
	{Exact("screenshot.png"), "temporary screenshot"},
	{Exact("snapshot.png"), "temporary screenshot"},

	// accidental writes
	{Exact("="), "accidental redirect (e.g. `x >= y` in a shell)"},
	{Exact("1"), "accidental redirect (e.g. `cmd 2>1`)"},
	{Exact("2"), "accidental redirect (e.g. `cmd 1>2`)"},

	// backups
	{MustPattern(`(~|\.bak|\.old|\.orig)$`), "backup file"},

	// sync conflicts
	{MustPattern(`\(.*conflicted copy.*\)`), "Dropbox conflicted copy"},
	{MustPattern(`\.sync-conflict-[0-9]{8}-[0-9]{6}`), "Syncthing conflict copy"},

	// swap files
	{MustPattern(`^\..+\.sw[a-p]$`), "vim swap file"},

	// conversion leftovers
	{MustPattern(`^magick-[A-Za-z0-9_-]+$`), "ImageMagick temporary file"},
	{MustPattern(`^_region_\.(tex|log|dvi|pdf|aux)$`), "AUCTeX region file"},
	{MustPattern(`^gs_[A-Za-z0-9]{5,}$`), "Ghostscript temporary file"},
	{MustPattern(`^\.~lock\..+#$`), "stale LibreOffice lock file"},
}

// TypeRule matches a classified type by substring.
type TypeRule struct {
	Contains string
	Reason   string
}

// DefaultTypes apply to the classified type regardless of age.
//
//nolint:gochecknoglobals // Rule table
var DefaultTypes = []TypeRule{
	{Contains: "tag file", Reason: "tag index, regenerate with ctags"},
}

// OldBinaries maps classified types to the reason used once they exceed the
// old-binary age.
//
//nolint:gochecknoglobals // Rule table
var OldBinaries = map[string]string{
	"ELF relocatable": "old relocatable object",
	"ELF executable":  "old executable",
}

// ManifestRule suggests cleaning a package whose manifest sits next to a
// generated directory.
type ManifestRule struct {
	// Manifest is the exact manifest file name.
	Manifest string
	// Generated is the sibling directory the build generates.
	Generated string
	// Command returns the clean command for the package directory dir.
	Command func(dir string) string
	Reason  string
}

// DefaultManifests lists packages known to generate message code.
//
//nolint:gochecknoglobals // Rule table
var DefaultManifests = []ManifestRule{
	{
		Manifest:  "manifest.xml",
		Generated: "msg_gen",
		Command:   func(dir string) string { return "(cd " + quote(dir) + " && make clean)" },
		Reason:    "ROS package with generated messages",
	},
}

// ArtifactRule suggests a clean command for directories holding files with
// one of Exts.
type ArtifactRule struct {
	Exts []string
	// Marker, when set, must exist in the directory for the rule to apply.
	Marker  string
	Command func(dir string) string
	Reason  string
}

// DefaultArtifacts lists intermediate build artifacts.
//
//nolint:gochecknoglobals // Rule table
var DefaultArtifacts = []ArtifactRule{
	{
		Exts:    []string{".o", ".obj"},
		Command: func(dir string) string { return "make -C " + quote(dir) + " clean" },
		Reason:  "object files",
	},
	{
		Exts:    []string{".aux", ".toc", ".fdb_latexmk", ".fls"},
		Command: func(dir string) string { return "(cd " + quote(dir) + " && latexmk -c)" },
		Reason:  "LaTeX intermediate files",
	},
	{
		Exts:    []string{".pyc"},
		Command: func(dir string) string { return "py3clean " + quote(dir) },
		Reason:  "Python byte-code",
	},
	{
		Exts:    []string{".class"},
		Marker:  "pom.xml",
		Command: func(dir string) string { return "(cd " + quote(dir) + " && mvn clean)" },
		Reason:  "Java class files",
	},
}
