//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Plays a recorded session headlessly, e.g. REPLAY=replay.json mage test:replay.
func (Test) Replay() error {
	file := envOr("REPLAY", "replay.json")
	_, err := executeCmd("go", withArgs("run", "./cmd/simian", "-headless", "-replay", file), withStream())
	return err
}
