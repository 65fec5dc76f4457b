//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo in a window with the config file watched for changes.
func (Run) Game() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run simian...")
	_, err := executeCmd("bin/simian", withArgs("-config", "cmd/simian/configs/engine.toml", "-watch"), withStream())
	return err
}

// Runs the demo headlessly for a fixed number of frames.
func (Run) Headless() error {
	frames := envOr("FRAMES", "600")
	_, err := executeCmd("go", withArgs("run", "./cmd/simian", "-headless", "-frames", frames), withStream())
	return err
}
