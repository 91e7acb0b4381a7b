package deps

import "path/filepath"

// CheckChdman reports the chdman binary a session would run.
//
// A configured path is authoritative: when set, nothing else is probed.
// Otherwise the executable next to the application wins over PATH. A PATH
// hit is reported as available with a note, because the interactive session
// only looks in the first two places.
func CheckChdman(configured, appDir, binary string) Status {
	status := Status{
		Name:        "chdman",
		Description: "Required for every conversion and extraction",
	}

	var candidates []candidate
	if configured != "" {
		candidates = []candidate{{SourceConfig, configured}}
	} else {
		if appDir != "" {
			candidates = append(candidates, candidate{SourceAppDir, filepath.Join(appDir, binary)})
		}
		candidates = append(candidates, candidate{SourcePath, binary})
	}

	found, source, err := resolve(candidates)
	if err != nil {
		status.Command = binary
		if configured != "" {
			status.Command = configured
		}
		status.Detail = err.Error()
		return status
	}
	status.Command = found
	status.Source = source
	status.Available = true
	if source == SourcePath {
		status.Detail = "found on PATH; the session expects it next to chdbatch or in tool.path"
	}
	return status
}
