package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	info := Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown", ModSum: "unknown", Modified: "false"}
	fromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0", Sum: "h1:abc"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123abc"},
			{Key: "vcs.time", Value: "2026-10-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "0123abc", info.GitCommit)
	assert.Equal(t, "2026-10-01T10:00:00Z", info.BuildDate)
	assert.Equal(t, "true", info.Modified)
	assert.Equal(t, "h1:abc", info.ModSum)
}

// ldflags 注入的值不会被覆盖
func TestFromBuildInfoKeepsLdflags(t *testing.T) {
	info := Info{Version: "1.0.0", GitCommit: "feed", BuildDate: "2026-01-01", ModSum: "unknown"}
	fromBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}},
	})
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "feed", info.GitCommit)
}

func TestVersionStrings(t *testing.T) {
	assert.Equal(t, "v1.0.0", releaseTag("1.0.0"))
	assert.Equal(t, "v1.0.0", releaseTag("v1.0.0"))
	assert.True(t, strings.HasPrefix(GetShortVersionString(), "raml2doc version "))
	assert.Contains(t, GetVersionString(), "reads RAML 0.8")
}
