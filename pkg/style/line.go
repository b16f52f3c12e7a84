package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yeisme/raml2doc/pkg/validate"
)

// PrintHeading 打印一个区块标题
func PrintHeading(w io.Writer, title string) error {
	style := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, style.Render(strings.ToUpper(title)))
	return err
}

// PrintReports 逐条打印示例校验结果，失败的条目列出全部错误
func PrintReports(w io.Writer, reports []validate.Report) error {
	ok := lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	bad := lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	detail := lipgloss.NewStyle().Foreground(ColorText)

	for _, r := range reports {
		var line string
		switch {
		case r.Err != nil:
			line = fmt.Sprintf("  %s %s  %s", bad.Render("ERROR"), r.Location, detail.Render(r.Err.Error()))
		case !r.Valid:
			line = fmt.Sprintf("  %s %s", bad.Render("FAIL "), r.Location)
		default:
			line = fmt.Sprintf("  %s %s", ok.Render("OK   "), r.Location)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, e := range r.Errors {
			if _, err := fmt.Fprintln(w, "        "+detail.Render(e)); err != nil {
				return err
			}
		}
	}
	return nil
}
