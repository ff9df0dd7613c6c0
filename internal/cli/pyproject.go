package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// projectArg resolves the project to operate on: the first positional
// argument when given, otherwise the name from a pyproject.toml in the
// working directory.
func projectArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if name := pyprojectName("."); name != "" {
		return name, nil
	}
	return "", errors.New("no project given and no pyproject.toml in the working directory")
}

// pyprojectName probes dir/pyproject.toml for a project name so commands
// can be run without arguments inside a Python project. The [tool.poetry]
// table wins over [project] when both are present.
func pyprojectName(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		return ""
	}
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Name string `toml:"name"`
			} `toml:"poetry"`
		} `toml:"tool"`
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return ""
	}
	if pyproject.Tool.Poetry.Name != "" {
		return pyproject.Tool.Poetry.Name
	}
	return pyproject.Project.Name
}
