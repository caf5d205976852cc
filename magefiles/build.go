//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Game 编译桌面版到 bin/survival
func (Build) Game() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/survival", "."), withStream())
	return err
}

// Simulate 编译无头运行器到 bin/simulate
func (Build) Simulate() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/simulate", "./cmd/simulate"), withStream())
	return err
}

// All 编译全部可执行文件
func (Build) All() {
	mg.Deps(Build.Game, Build.Simulate)
}
