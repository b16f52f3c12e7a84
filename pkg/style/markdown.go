package style

import (
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/yeisme/raml2doc/pkg/configs"
)

// RenderMarkdown 渲染 Markdown 文本并输出到 w
// 宽度为 0 时使用终端宽度，并限制在 [80, 120]
func RenderMarkdown(w io.Writer, input string, cfg configs.PreviewConfig) error {
	theme := cfg.Theme
	if theme == "" {
		theme = "dracula"
	}
	termWidth := detectTerminalWidth(w)
	if termWidth <= 0 {
		termWidth = 80
	}
	width := cfg.Width
	if width <= 0 {
		width = termWidth
	}
	if width < 80 {
		width = 80
	}
	if width > 120 {
		width = max(80, min(120, termWidth))
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
		glamour.WithInlineTableLinks(true),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(input)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}
