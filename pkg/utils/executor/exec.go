// Package executor 执行外部命令并返回带上下文信息的错误
package executor

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ExecError 是一个结构化的命令执行错误
type ExecError struct {
	Cmd    string   // 执行的命令
	Args   []string // 命令参数
	Output string   // 命令输出（标准输出和标准错误）
	Err    error    // 底层错误 (通常是 *exec.ExitError)
}

// Error 实现了 error 接口
func (e *ExecError) Error() string {
	args := strings.Join(e.Args, " ")

	code := "unknown"
	if c := e.ExitCode(); c >= 0 {
		code = fmt.Sprintf("%d", c)
	}

	out := e.CleanOutput()
	if out == "" {
		return fmt.Sprintf("command execution failed: %s %s, exit-code: %s, err: %v", e.Cmd, args, code, e.Err)
	}

	// 按行缩进输出，增强可读性
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = "\t" + l
	}
	return fmt.Sprintf("command execution failed: %s %s, exit-code: %s, err: %v\noutput:\n%s",
		e.Cmd, args, code, e.Err, strings.Join(lines, "\n"))
}

// Unwrap 允许使用 errors.Is 和 errors.As 来检查底层错误
func (e *ExecError) Unwrap() error {
	return e.Err
}

// ansiRegexp 匹配 ANSI 颜色控制序列，例如 "\x1b[31m"
var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// CleanOutput 返回去除 ANSI 控制码并修整空白的输出
func (e *ExecError) CleanOutput() string {
	return strings.TrimSpace(ansiRegexp.ReplaceAllString(e.Output, ""))
}

// ExitCode 返回进程退出码，不可用时返回 -1
func (e *ExecError) ExitCode() int {
	if exitErr, ok := e.Err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

// Executor 命令执行器，一个实例只用于一次执行
type Executor struct {
	cmd *exec.Cmd
}

// NewExecutor 创建一个新的命令执行器
func NewExecutor(name string, args ...string) *Executor {
	return &Executor{cmd: exec.Command(name, args...)}
}

// WithDir 设置命令执行的工作目录
func (e *Executor) WithDir(dir string) *Executor {
	e.cmd.Dir = dir
	return e
}

// CombinedOutput 执行命令并返回合并的标准输出和标准错误
func (e *Executor) CombinedOutput() (string, error) {
	output, err := e.cmd.CombinedOutput()
	if err != nil {
		return string(output), &ExecError{
			Cmd:    e.cmd.Path,
			Args:   e.cmd.Args[1:],
			Output: string(output),
			Err:    err,
		}
	}
	return string(output), nil
}
