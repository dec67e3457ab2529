package depm

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ManifestFileName is the module manifest file the loader looks for in a
// root module's directory. Its absence is not an error: per spec.md's
// import-resolution algorithm, a root with no manifest falls back to
// naming itself after the source file's basename.
const ManifestFileName = "wis-mod.toml"

// manifest mirrors the on-disk TOML shape.
type manifest struct {
	Name string `toml:"name"`
}

// LoadManifest looks for a manifest in dir and, if present, returns the
// module name it declares. The second return value is false if no
// manifest file exists there, which is not itself an error.
func LoadManifest(dir string) (string, bool, error) {
	path := filepath.Join(dir, ManifestFileName)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("unable to open module manifest at %q: %w", path, err)
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return "", false, fmt.Errorf("error reading module manifest at %q: %w", path, err)
	}

	m := &manifest{}
	if err := toml.Unmarshal(buf, m); err != nil {
		return "", false, fmt.Errorf("error parsing module manifest at %q: %w", path, err)
	}

	if m.Name == "" {
		return "", false, fmt.Errorf("module manifest at %q is missing a name", path)
	}

	return m.Name, true, nil
}
