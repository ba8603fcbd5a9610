package errors

import "fmt"

// Common errors of the releasenotes pipeline. Each constructor pairs the
// failure with the steps most likely to fix it.

// ConfigInvalid wraps a configuration load or validation failure.
func ConfigInvalid(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("invalid configuration (%s)", path),
		"Check the file for YAML syntax errors",
		"Environment overrides use the RELNOTES_ prefix, e.g. RELNOTES_GROUP_BY=type",
		"Run 'releasenotes config' to print the effective configuration",
	)
}

// RulesInvalid wraps a rule table that failed to load.
func RulesInvalid(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("invalid rule table %s", path),
		"Every rule needs at least one of type, scope or breaking",
		"A breaking rule cannot also set type or scope",
		"Severity must be one of major, minor, patch, none or empty",
		"Run 'releasenotes rules' to see the built-in table",
	)
}

// TemplatesInvalid wraps a template fragment that could not be loaded or parsed.
func TemplatesInvalid(dir string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot load templates from %s", dir),
		"The directory must contain main, header, commit, note, note-group and footer fragments with the .tmpl extension",
		"Unset templates_dir to use the built-in templates",
	)
}

// InputNotReadable wraps a commit input file that could not be decoded.
func InputNotReadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot read commits from %s", path),
		"Input must be a JSON or YAML list of commit records",
		"Omit --input to read commits from the git history",
	)
}

// GitNotRepository creates an error when not in a git repository.
func GitNotRepository(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("not a git repository: %s", path),
		"Run inside a repository or pass --repo <path>",
		"Or supply commit records with --input <file>",
	)
}

// RenderFailed wraps a template execution failure.
func RenderFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"rendering release notes failed",
		"Check custom fragments for fields that do not exist in the render context",
	)
}

// FileNotWritable creates an error when the changelog cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
		"Use --dry-run to print the notes without writing",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'releasenotes <command> --help' to see valid options",
	)
}
