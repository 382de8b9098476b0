package support

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/panoroll/internal/imageio"
	"github.com/MeKo-Tech/panoroll/internal/testutil"
)

// aPanoramaImageOfSize writes a synthetic striped panorama into the input
// directory.
func (testCtx *TestContext) aPanoramaImageOfSize(name string, width, height int) error {
	path, err := testutil.SavePano(testCtx.InputDir, name, testutil.StripePano(width, height))
	if err != nil {
		return fmt.Errorf("failed to create panorama %s: %w", name, err)
	}
	testCtx.TrackFile(path)
	return nil
}

// aCorruptImage writes a file with an image extension but undecodable content.
func (testCtx *TestContext) aCorruptImage(name string) error {
	path, err := testutil.SaveCorruptPano(testCtx.InputDir, name)
	if err != nil {
		return fmt.Errorf("failed to create corrupt image %s: %w", name, err)
	}
	testCtx.TrackFile(path)
	return nil
}

// theRotatedImageShouldExist checks the output directory for the named file.
func (testCtx *TestContext) theRotatedImageShouldExist(name string) error {
	path := filepath.Join(testCtx.OutputDir, name)
	if !testutil.FileExists(path) {
		return fmt.Errorf("rotated image not found: %s", path)
	}
	return nil
}

// theRotatedImageShouldNotExist verifies no output was written for the file.
func (testCtx *TestContext) theRotatedImageShouldNotExist(name string) error {
	path := filepath.Join(testCtx.OutputDir, name)
	if testutil.FileExists(path) {
		return fmt.Errorf("unexpected rotated image: %s", path)
	}
	return nil
}

// theRotatedImageShouldKeepFormat decodes the output and checks its container.
func (testCtx *TestContext) theRotatedImageShouldKeepFormat(name, format string) error {
	path := filepath.Join(testCtx.OutputDir, name)
	_, meta, err := imageio.Decode(path)
	if err != nil {
		return fmt.Errorf("failed to decode rotated image %s: %w", path, err)
	}
	if !strings.EqualFold(meta.Format, format) {
		return fmt.Errorf("rotated image %s has format %s, expected %s", path, meta.Format, format)
	}
	return nil
}

// theRotatedImageShouldHaveSize decodes the output and checks its dimensions.
func (testCtx *TestContext) theRotatedImageShouldHaveSize(name string, width, height int) error {
	path := filepath.Join(testCtx.OutputDir, name)
	_, meta, err := imageio.Decode(path)
	if err != nil {
		return fmt.Errorf("failed to decode rotated image %s: %w", path, err)
	}
	if meta.Width != width || meta.Height != height {
		return fmt.Errorf("rotated image %s is %dx%d, expected %dx%d",
			path, meta.Width, meta.Height, width, height)
	}
	return nil
}

// RegisterRotateSteps registers panorama fixture and rotation result steps.
func (testCtx *TestContext) RegisterRotateSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a panorama image "([^"]*)" of size (\d+)x(\d+)$`, testCtx.aPanoramaImageOfSize)
	sc.Step(`^a corrupt image "([^"]*)"$`, testCtx.aCorruptImage)
	sc.Step(`^the rotated image "([^"]*)" should exist$`, testCtx.theRotatedImageShouldExist)
	sc.Step(`^the rotated image "([^"]*)" should not exist$`, testCtx.theRotatedImageShouldNotExist)
	sc.Step(`^the rotated image "([^"]*)" should be in (\w+) format$`, testCtx.theRotatedImageShouldKeepFormat)
	sc.Step(`^the rotated image "([^"]*)" should have size (\d+)x(\d+)$`, testCtx.theRotatedImageShouldHaveSize)
}
