package appdirs

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	PortableEnv = "STORYKURA_PORTABLE"
	HomeEnv     = "STORYKURA_HOME"

	configFileName = "config.toml"
	publicDirName  = "public"
	scriptDirName  = "scripts"
)

// Layout names where the directories below were anchored.
type Layout string

const (
	LayoutWorkDir  Layout = "workdir"
	LayoutHome     Layout = "home"
	LayoutPortable Layout = "portable"
)

// Paths is the on-disk layout of a storykura install. Generated audio goes under
// OutputDir/audio, which mirrors the editor's public/audio folder.
type Paths struct {
	Layout     Layout
	ConfigDir  string
	ConfigFile string
	LogDir     string
	OutputDir  string
	ScriptDir  string
}

type resolveDeps struct {
	getenv     func(string) string
	executable func() (string, error)
}

func Resolve() (Paths, error) {
	return resolve(resolveDeps{
		getenv:     os.Getenv,
		executable: os.Executable,
	})
}

// resolve picks the layout: portable (next to the binary) wins over STORYKURA_HOME,
// which wins over the working directory.
func resolve(deps resolveDeps) (Paths, error) {
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.executable == nil {
		deps.executable = os.Executable
	}

	if isPortableEnabled(deps.getenv(PortableEnv)) {
		executablePath, err := deps.executable()
		if err != nil {
			return Paths{}, err
		}
		paths := rootedPaths(filepath.Join(filepath.Dir(executablePath), "data"))
		paths.Layout = LayoutPortable
		// 脚本随程序一起分发
		paths.ScriptDir = filepath.Join(filepath.Dir(executablePath), scriptDirName)
		return paths, nil
	}

	if raw, ok := lookupNonEmpty(deps.getenv, HomeEnv); ok {
		paths := rootedPaths(filepath.Clean(raw))
		paths.Layout = LayoutHome
		return paths, nil
	}

	paths := rootedPaths("")
	paths.Layout = LayoutWorkDir
	paths.LogDir = "."
	return paths, nil
}

func rootedPaths(root string) Paths {
	configDir := filepath.Join(root, "config")
	return Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		LogDir:     filepath.Join(root, "logs"),
		OutputDir:  filepath.Join(root, publicDirName),
		ScriptDir:  filepath.Join(root, scriptDirName),
	}
}

func lookupNonEmpty(getenv func(string) string, key string) (string, bool) {
	value := strings.TrimSpace(getenv(key))
	return value, value != ""
}

func isPortableEnabled(value string) bool {
	normalized := strings.TrimSpace(strings.ToLower(value))
	return normalized == "1" || normalized == "true"
}
