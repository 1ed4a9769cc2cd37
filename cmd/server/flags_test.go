package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"storykura/internal/appdirs"
)

func usePortableDirs(t *testing.T) {
	t.Helper()
	t.Setenv(appdirs.PortableEnv, "1")
}

func TestHandleCLIFlagsWithoutFlagsDoesNothing(t *testing.T) {
	var out bytes.Buffer
	handled, code := handleCLIFlags(nil, &out)

	assert.False(t, handled)
	assert.Zero(t, code)
	assert.Empty(t, out.String())
}

func TestHandleCLIFlagsVersion(t *testing.T) {
	var out bytes.Buffer
	handled, code := handleCLIFlags([]string{"-version"}, &out)

	assert.True(t, handled)
	assert.Zero(t, code)
	assert.Contains(t, out.String(), "version: dev")
	assert.Contains(t, out.String(), "commit: none")
}

func TestHandleCLIFlagsUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	handled, code := handleCLIFlags([]string{"-nope"}, &out)

	assert.True(t, handled)
	assert.Equal(t, 2, code)
}

func TestPrintDiagnoseShowsPathsAndDependencies(t *testing.T) {
	usePortableDirs(t)
	t.Setenv("TTS_PROVIDER", "minimax")

	var out bytes.Buffer
	printDiagnose(&out)
	output := out.String()

	assert.Contains(t, output, "path.effective_log_dir:")
	assert.Contains(t, output, "layout: portable")
	assert.Contains(t, output, "path.log_file:")
	assert.Contains(t, output, "storykura.log")
	assert.Contains(t, output, "path.audio:")
	assert.Contains(t, output, "tts.provider: minimax")
	assert.Contains(t, output, "Dependency status")
	assert.Contains(t, output, "- python [OPTIONAL]")
	assert.Contains(t, output, "tts script")
}
