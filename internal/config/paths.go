package config

// ProjectConfigFile is the project-level config file name.
const ProjectConfigFile = ".releasenotes.yml"

// ProjectConfigPath returns the path to the project-level config file.
// This is always .releasenotes.yml relative to the current directory.
func ProjectConfigPath() string {
	return ProjectConfigFile
}
