package config

import (
	"path/filepath"
)

// ProjectConfigFile is the config file name looked up in the repository.
const ProjectConfigFile = ".commitlog.yml"

// ProjectConfigPath returns the path to the project-level config file.
// This is always .commitlog.yml inside repoDir, or the current directory
// when repoDir is empty.
func ProjectConfigPath(repoDir string) string {
	if repoDir == "" {
		return ProjectConfigFile
	}
	return filepath.Join(repoDir, ProjectConfigFile)
}
