// Package search 在 API 的顶层资源中查找资源：模糊建议与交互式选择
package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yeisme/raml2doc/pkg/raml"
)

// ErrNoResources API 中没有可选择的资源
var ErrNoResources = errors.New("no resources to select")

// Suggest 返回与 query 相近的资源名，按相似度排序
// 同时匹配资源名与 displayName
func Suggest(api *raml.API, query string) []string {
	q := strings.TrimPrefix(strings.TrimSpace(query), "/")
	if q == "" {
		return nil
	}

	type match struct {
		name string
		dist int
	}
	var out []match
	seen := map[string]bool{}
	add := func(name string, dist int) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, match{name: name, dist: dist})
	}

	names := api.ResourceNames()
	for _, rk := range fuzzy.RankFindNormalizedFold(q, names) {
		add(rk.Target, rk.Distance)
	}
	// 反向匹配: query 比资源名更长，例如 BinarySwitchResURI2
	for _, n := range names {
		if fuzzy.MatchNormalizedFold(n, q) {
			add(n, fuzzy.LevenshteinDistance(strings.ToLower(n), strings.ToLower(q)))
		}
	}
	for _, r := range api.Resources {
		if r.DisplayName != "" && fuzzy.MatchNormalizedFold(q, r.DisplayName) {
			add(r.Key(), fuzzy.LevenshteinDistance(strings.ToLower(r.DisplayName), strings.ToLower(q)))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	res := make([]string, len(out))
	for i, m := range out {
		res[i] = m.name
	}
	return res
}

// Pick 使用 fuzzyfinder 交互选择一个顶层资源，返回不带前导斜杠的名称
func Pick(api *raml.API) (string, error) {
	resources := api.Resources
	if len(resources) == 0 {
		return "", ErrNoResources
	}
	idx, err := fuzzyfinder.Find(resources,
		func(i int) string {
			r := resources[i]
			if r.DisplayName != "" {
				return fmt.Sprintf("%s  %s", r.Name, r.DisplayName)
			}
			return r.Name
		},
		fuzzyfinder.WithPromptString("resource> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			return Preview(resources[i])
		}),
	)
	if err != nil {
		return "", err
	}
	return resources[idx].Key(), nil
}

// Preview 资源的简要说明：路径、方法与描述
func Preview(r *raml.Resource) string {
	var sb strings.Builder
	r.Walk(func(res *raml.Resource, depth int) bool {
		verbs := make([]string, 0, len(res.Methods))
		for _, m := range res.Methods {
			verbs = append(verbs, m.Verb)
		}
		fmt.Fprintf(&sb, "%s%s [%s]\n", strings.Repeat("  ", depth), res.Path(), strings.Join(verbs, ", "))
		return true
	})
	if r.Description != "" {
		sb.WriteString("\n" + strings.TrimSpace(r.Description) + "\n")
	}
	return sb.String()
}
