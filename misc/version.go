// Package misc holds build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set by the linker: -X xmnote/misc.version=... -X xmnote/misc.buildHash=...
var (
	version   = "dev"
	buildHash = "unknown"
	appName   string
)

// GetAppName returns name of the running executable without extension.
func GetAppName() string {
	if appName == "" {
		name := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return buildHash
}
