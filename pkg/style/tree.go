package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yeisme/raml2doc/pkg/raml"
)

// PrintResourceTree 输出 API 的资源树，每个资源后附带它的方法
func PrintResourceTree(w io.Writer, api *raml.API, resources []*raml.Resource) error {
	rootStyle := lipgloss.NewStyle().Foreground(ColorAccentText).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(ColorText)
	enumeratorStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	root := api.Title
	if api.Version != "" {
		root += " " + api.Version
	}
	t := tree.New().Root(root)
	for _, r := range resources {
		t.Child(resourceTree(r))
	}
	t = t.Enumerator(tree.RoundedEnumerator).
		RootStyle(rootStyle).
		ItemStyle(itemStyle).
		EnumeratorStyle(enumeratorStyle)

	_, err := fmt.Fprintln(w, t)
	return err
}

func resourceTree(r *raml.Resource) any {
	label := ResourceLabel(r)
	if len(r.Resources) == 0 {
		return label
	}
	t := tree.New().Root(label)
	for _, c := range r.Resources {
		t.Child(resourceTree(c))
	}
	return t
}

// ResourceLabel 资源名加上着色的方法列表，例如 /light [get post]
func ResourceLabel(r *raml.Resource) string {
	if len(r.Methods) == 0 {
		return r.Name
	}
	verbs := make([]string, 0, len(r.Methods))
	for _, m := range r.Methods {
		verbs = append(verbs, MethodStyle(m.Verb).Render(m.Verb))
	}
	label := r.Name + " [" + strings.Join(verbs, " ") + "]"
	if r.DisplayName != "" {
		label += " " + lipgloss.NewStyle().Faint(true).Render(r.DisplayName)
	}
	return label
}
