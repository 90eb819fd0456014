package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml scripts/*.tengo
var prefabsFS embed.FS

// Load returns a prefab file by name, preferring an on-disk copy under
// prefabs/ (so edits picked up by the watcher win) over the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return prefabsFS.ReadFile(clean)
}

// LoadScript returns an embedded or on-disk tengo source by name.
func LoadScript(name string) ([]byte, error) {
	s := cleanPath(name)
	if !strings.HasPrefix(s, "scripts/") {
		s = "scripts/" + s
	}
	if data, err := os.ReadFile(diskPath(s)); err == nil {
		return data, nil
	}
	return prefabsFS.ReadFile(s)
}

// ModTime reports the on-disk modification time of a prefab, if present.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "prefabs/")
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
