// Package style 提供终端中的样式化输出: 表格、资源树、Markdown 预览
package style

import "github.com/charmbracelet/lipgloss"

// 终端配色
const (
	// 强调色，用于标题背景
	ColorAccentPrimary = lipgloss.Color("#33A1FF")

	// 强调背景上的文本色
	ColorAccentText = lipgloss.Color("#FFFFFF")

	// 普通文本
	ColorText = lipgloss.Color("#E4E4E4")

	// 边框与树的连接符
	ColorBorder = lipgloss.Color("#444444")

	// 校验失败
	ColorDanger = lipgloss.Color("#FF5555")

	// 校验通过
	ColorSuccess = lipgloss.Color("#22C55E")
)

// methodColors 资源树中方法标签的颜色，与 CRUDN 表的列对应
var methodColors = map[string]lipgloss.Color{
	"put":    lipgloss.Color("#22C55E"), // Create
	"get":    lipgloss.Color("#33A1FF"), // Read
	"post":   lipgloss.Color("#dfab49"), // Update
	"delete": lipgloss.Color("#FF5555"), // Delete
	"notify": lipgloss.Color("#B388FF"), // Notify
}

// MethodStyle 返回方法标签的样式，未知方法使用普通文本色
func MethodStyle(verb string) lipgloss.Style {
	c, ok := methodColors[verb]
	if !ok {
		c = ColorText
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
