package support

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// substituteCommandVariables expands the placeholders a feature file may use
// for paths that only exist at runtime.
func (testCtx *TestContext) substituteCommandVariables(command string) string {
	command = strings.ReplaceAll(command, "panoroll ", testCtx.BinaryPath()+" ")
	command = strings.ReplaceAll(command, "{input_dir}", testCtx.InputDir)
	command = strings.ReplaceAll(command, "{output_dir}", testCtx.OutputDir)
	command = strings.ReplaceAll(command, "{temp_dir}", testCtx.TempDir)
	return command
}

// iRunCommand executes a command and stores the result.
func (testCtx *TestContext) iRunCommand(command string) error {
	command = testCtx.substituteCommandVariables(command)

	testCtx.LastCommand = command
	testCtx.LastStartTime = time.Now()

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = testCtx.WorkingDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)

	// Capture both stdout and stderr
	output, err := cmd.CombinedOutput()
	testCtx.LastOutput = string(output)
	testCtx.LastError = err
	testCtx.LastDuration = time.Since(testCtx.LastStartTime)

	if err != nil {
		exitError := &exec.ExitError{}
		if errors.As(err, &exitError) {
			testCtx.LastExitCode = exitError.ExitCode()
		} else {
			testCtx.LastExitCode = -1
		}
	} else {
		testCtx.LastExitCode = 0
	}

	return nil
}

// theCommandShouldSucceed verifies the command succeeded.
func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("command failed with exit code %d: %w\nOutput: %s",
			testCtx.LastExitCode, testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

// theCommandShouldFail verifies the command failed.
func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command succeeded when it should have failed\nOutput: %s", testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldContain verifies the output contains specific text.
func (testCtx *TestContext) theOutputShouldContain(expectedText string) error {
	if !strings.Contains(testCtx.LastOutput, expectedText) {
		return fmt.Errorf("output does not contain '%s'\nActual output: %s", expectedText, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldNotContain verifies the output omits specific text.
func (testCtx *TestContext) theOutputShouldNotContain(unexpectedText string) error {
	if strings.Contains(testCtx.LastOutput, unexpectedText) {
		return fmt.Errorf("output contains '%s' but should not\nActual output: %s",
			unexpectedText, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldBeValidJSON verifies the output parses as JSON, skipping any
// log lines that precede the document.
func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	output := strings.TrimSpace(testCtx.LastOutput)

	jsonStart := strings.IndexAny(output, "{[")
	if jsonStart == -1 {
		return fmt.Errorf("no JSON document found in output: %s", output)
	}

	var parsed any
	if err := json.Unmarshal([]byte(output[jsonStart:]), &parsed); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\nOutput: %s", err, output)
	}
	return nil
}

// RegisterCommonSteps registers command execution and verification steps.
func (testCtx *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I run "([^"]*)"$`, testCtx.iRunCommand)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
}
