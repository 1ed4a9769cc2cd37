package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"storykura/config"
	"storykura/internal/appdirs"
	"storykura/internal/deps"
	"storykura/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// handleCLIFlags reports whether a flag consumed the run and the exit code to use.
func handleCLIFlags(args []string, out io.Writer) (bool, int) {
	flags := flag.NewFlagSet("storykura", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	showVersion := flags.Bool("version", false, "print version information")
	showDiagnose := flags.Bool("diagnose", false, "print runtime diagnostics")

	if err := flags.Parse(args); err != nil {
		return true, 2
	}

	if !*showVersion && !*showDiagnose {
		return false, 0
	}

	if *showVersion {
		printVersion(out)
	}

	if *showDiagnose {
		if *showVersion {
			fmt.Fprintln(out)
		}
		printDiagnose(out)
	}

	return true, 0
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "version: %s\ncommit: %s\ndate: %s\n", version, commit, date)
}

func printDiagnose(out io.Writer) {
	fmt.Fprintf(out, "runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "version: %s\n", version)

	if wd, err := os.Getwd(); err == nil {
		fmt.Fprintf(out, "working_dir: %s\n", wd)
	} else {
		fmt.Fprintf(out, "working_dir: <error: %v>\n", err)
	}

	dirs, err := appdirs.Resolve()
	if err != nil {
		fmt.Fprintf(out, "appdirs: <error: %v>\n", err)
	} else {
		fmt.Fprintf(out, "layout: %s\n", dirs.Layout)
		printPath(out, "config", dirs.ConfigFile)
		printPath(out, "output", dirs.OutputDir)
		printPath(out, "audio", appdirs.AudioRootFor(dirs))
		printPath(out, "script_dir", dirs.ScriptDir)
	}
	if logDir, err := log.ResolveLogDir(); err == nil {
		printPath(out, "effective_log_dir", logDir)
	} else {
		fmt.Fprintf(out, "path.effective_log_dir: <error: %v>\n", err)
	}
	if logFile, err := log.ResolveLogFilePath(); err == nil {
		printPath(out, "log_file", logFile)
	} else {
		fmt.Fprintf(out, "path.log_file: <error: %v>\n", err)
	}

	// 未加载配置文件时，以默认配置叠加环境变量为准
	conf := config.Conf
	config.ApplyEnv(&conf, os.Getenv)
	fmt.Fprintf(out, "tts.provider: %s\n", conf.Tts.Provider)

	states := deps.ResolveDependencyInventory(
		conf.Tts.Provider,
		conf.Tts.Dashscope.PythonPath,
		deps.ScriptCandidates(conf.Tts.Dashscope.ScriptPath),
	)
	fmt.Fprintln(out, deps.FormatDependencyReport(states))
}

func printPath(out io.Writer, name, value string) {
	if value == "" {
		fmt.Fprintf(out, "path.%s: <unset>\n", name)
		return
	}
	absPath, err := filepath.Abs(value)
	if err != nil {
		fmt.Fprintf(out, "path.%s: %s (abs_error=%v)\n", name, value, err)
		return
	}

	if _, err = os.Stat(absPath); err == nil {
		fmt.Fprintf(out, "path.%s: %s (exists)\n", name, absPath)
		return
	}
	if os.IsNotExist(err) {
		fmt.Fprintf(out, "path.%s: %s (missing)\n", name, absPath)
		return
	}

	fmt.Fprintf(out, "path.%s: %s (error=%v)\n", name, absPath, err)
}
