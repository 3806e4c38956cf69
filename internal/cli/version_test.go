package cli

import (
	"encoding/json"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	prev := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = prev }()

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()
	fn()
	w.Close()
	return <-done
}

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
}

func TestCurrentVersionInfo(t *testing.T) {
	t.Run("from build info", func(t *testing.T) {
		stubBuildInfo(t, &debug.BuildInfo{
			GoVersion: "go1.23.4",
			Main:      debug.Module{Path: "github.com/aidanlsb/odfkit", Version: "v0.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-09-01T10:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "GOOS", Value: "windows"},
				{Key: "GOARCH", Value: "amd64"},
			},
		})

		info := currentVersionInfo()
		if info.Version != "v0.4.0" || info.Commit != "abc123" || !info.Modified {
			t.Errorf("info = %+v", info)
		}
		if info.GOOS != "windows" || info.GOARCH != "amd64" || info.GoVersion != "go1.23.4" {
			t.Errorf("platform = %s/%s %s", info.GOOS, info.GOARCH, info.GoVersion)
		}
	})

	t.Run("without build info", func(t *testing.T) {
		stubBuildInfo(t, nil)

		info := currentVersionInfo()
		if info.Version != "devel" || info.ModulePath != defaultModulePath {
			t.Errorf("info = %+v", info)
		}
		if info.GOOS != runtime.GOOS || info.GoVersion != runtime.Version() {
			t.Errorf("runtime fallback not applied: %+v", info)
		}
	})
}

func TestVersionCommandJSONOutput(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() { jsonOutput = prevJSON })
	jsonOutput = true
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Path: "github.com/aidanlsb/odfkit", Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})

	out := captureStdout(t, func() {
		if err := versionCmd.RunE(versionCmd, nil); err != nil {
			t.Fatalf("versionCmd.RunE: %v", err)
		}
	})

	var resp struct {
		OK   bool        `json:"ok"`
		Data versionInfo `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK || resp.Data.Version != "devel" || resp.Data.Commit != "deadbeef" {
		t.Errorf("resp = %+v", resp)
	}
}
