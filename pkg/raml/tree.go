package raml

import (
	"strings"

	"github.com/xlab/treeprint"
)

// TreeString renders the resource tree as plain text, one line per
// resource with its methods, for debug logging.
func (a *API) TreeString() string {
	root := treeprint.NewWithRoot(a.Title)
	for _, r := range a.Resources {
		addBranch(root, r)
	}
	return root.String()
}

func addBranch(t treeprint.Tree, r *Resource) {
	label := r.Name
	if len(r.Methods) > 0 {
		verbs := make([]string, 0, len(r.Methods))
		for _, m := range r.Methods {
			verbs = append(verbs, m.Verb)
		}
		label += " [" + strings.Join(verbs, ", ") + "]"
	}
	if len(r.Resources) == 0 {
		t.AddNode(label)
		return
	}
	b := t.AddBranch(label)
	for _, c := range r.Resources {
		addBranch(b, c)
	}
}
