//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Game 以热加载模式运行游戏
func (Run) Game() error {
	fmt.Println("Run survival...")
	_, err := executeCmd("go", withArgs("run", ".", "--watch"), withStream())
	return err
}

// Simulate 无头运行 600 个 tick
func (Run) Simulate() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/simulate", "--ticks", "600", "--autopilot"), withStream())
	return err
}

// Test 运行全部测试
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Tidy 整理依赖
func Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"))
	return err
}
