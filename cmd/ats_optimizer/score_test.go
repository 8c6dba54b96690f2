package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCommand_MissingResume(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "score", "--job", "job.txt")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "resume")
}

func TestScoreCommand_MissingJob(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	resumeFile := filepath.Join(tmpDir, "resume.txt")
	_ = os.WriteFile(resumeFile, []byte("Go developer resume"), 0644)

	cmd := exec.Command(binaryPath, "score", "--resume", resumeFile)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --job or --job-url must be provided")
}
