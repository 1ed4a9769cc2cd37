package appdirs

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestResolveLayouts(t *testing.T) {
	exePath := filepath.Join("/", "apps", "storykura", "storykura")
	exeDir := filepath.Dir(exePath)
	portableData := filepath.Join(exeDir, "data")
	home := filepath.Join("/", "srv", "storykura")

	testCases := []struct {
		name        string
		env         map[string]string
		want        Paths
		wantExeCall bool
	}{
		{
			name: "working directory mirrors the editor layout",
			want: Paths{
				Layout:     LayoutWorkDir,
				ConfigDir:  "config",
				ConfigFile: filepath.Join("config", "config.toml"),
				LogDir:     ".",
				OutputDir:  "public",
				ScriptDir:  "scripts",
			},
		},
		{
			name: "home env roots every directory",
			env:  map[string]string{HomeEnv: home + string(filepath.Separator)},
			want: Paths{
				Layout:     LayoutHome,
				ConfigDir:  filepath.Join(home, "config"),
				ConfigFile: filepath.Join(home, "config", "config.toml"),
				LogDir:     filepath.Join(home, "logs"),
				OutputDir:  filepath.Join(home, "public"),
				ScriptDir:  filepath.Join(home, "scripts"),
			},
		},
		{
			name: "portable wins over home and keeps scripts beside the binary",
			env:  map[string]string{PortableEnv: "true", HomeEnv: home},
			want: Paths{
				Layout:     LayoutPortable,
				ConfigDir:  filepath.Join(portableData, "config"),
				ConfigFile: filepath.Join(portableData, "config", "config.toml"),
				LogDir:     filepath.Join(portableData, "logs"),
				OutputDir:  filepath.Join(portableData, "public"),
				ScriptDir:  filepath.Join(exeDir, "scripts"),
			},
			wantExeCall: true,
		},
		{
			name: "blank home is ignored",
			env:  map[string]string{HomeEnv: "   "},
			want: Paths{
				Layout:     LayoutWorkDir,
				ConfigDir:  "config",
				ConfigFile: filepath.Join("config", "config.toml"),
				LogDir:     ".",
				OutputDir:  "public",
				ScriptDir:  "scripts",
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			exeCalled := false
			got, err := resolve(resolveDeps{
				getenv: func(key string) string { return tc.env[key] },
				executable: func() (string, error) {
					exeCalled = true
					return exePath, nil
				},
			})
			if err != nil {
				t.Fatalf("resolve() returned unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("resolve() = %+v, want %+v", got, tc.want)
			}
			if exeCalled != tc.wantExeCall {
				t.Fatalf("executable() called = %t, want %t", exeCalled, tc.wantExeCall)
			}
		})
	}
}

func TestResolvePortableExecutableError(t *testing.T) {
	_, err := resolve(resolveDeps{
		getenv: func(key string) string {
			if key == PortableEnv {
				return "1"
			}
			return ""
		},
		executable: func() (string, error) {
			return "", errors.New("no executable")
		},
	})
	if err == nil || !strings.Contains(err.Error(), "no executable") {
		t.Fatalf("resolve() error = %v, want executable lookup error", err)
	}
}

func TestIsPortableEnabled(t *testing.T) {
	testCases := []struct {
		value string
		want  bool
	}{
		{value: "", want: false},
		{value: "0", want: false},
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "TRUE", want: true},
		{value: "  true  ", want: true},
		{value: "false", want: false},
	}

	for _, tc := range testCases {
		if got := isPortableEnabled(tc.value); got != tc.want {
			t.Fatalf("isPortableEnabled(%q) = %t, want %t", tc.value, got, tc.want)
		}
	}
}
