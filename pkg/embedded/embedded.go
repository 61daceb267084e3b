// Package embedded 提供嵌入配置数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让 config 等包可以读取嵌入的 data/ 目录。
//
// 以 "data/" 开头的路径优先从嵌入文件系统读取；其他路径（如测试中的临时文件、
// 工具通过 -config 指定的外部文件）直接从操作系统文件系统读取。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// dataPrefix 嵌入数据目录前缀
const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（测试使用）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 判断路径是否应从嵌入文件系统读取
func isEmbeddedPath(path string) bool {
	return initialized && strings.HasPrefix(path, dataPrefix)
}

// ReadFile 读取文件内容
//
// 参数：
//   - path: 文件路径，"data/" 前缀且已初始化时从嵌入 FS 读取
//
// 返回：
//   - []byte: 文件内容
//   - error: 文件不存在或读取失败
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if isEmbeddedPath(path) {
		data, err := fs.ReadFile(dataFS, path)
		if err != nil {
			return nil, fmt.Errorf("embedded read %s: %w", path, err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	path = normalize(path)
	if isEmbeddedPath(path) {
		_, err := fs.Stat(dataFS, path)
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}

// Glob 匹配嵌入数据目录中的文件
// 路径模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}
	pattern = normalize(pattern)
	if !strings.HasPrefix(pattern, dataPrefix) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with '%s')", pattern, dataPrefix)
	}
	return fs.Glob(dataFS, pattern)
}
