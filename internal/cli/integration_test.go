//go:build integration

package cli_test

import (
	"strings"
	"testing"

	"github.com/aidanlsb/odfkit/internal/testutil"
)

// TestIntegration_CheckReportsDiagnostics checks that recoverable problems are
// reported as warnings and only fail in strict mode.
func TestIntegration_CheckReportsDiagnostics(t *testing.T) {
	odf := strings.Replace(testutil.MinimalODF(), "NumberOfWindchestGroups=1", "NumberOfWindchestGroups=2", 1)
	o := testutil.NewTestOrgan(t).WithODF(odf).Build()

	result := o.RunCLI("check", "test.organ")
	result.MustSucceed(t)
	result.AssertHasWarning(t, "MALFORMED_SECTION")
	if got := result.DataInt("warnings"); got != 1 {
		t.Errorf("warnings = %d, want 1", got)
	}
	if result.DataString("dialect") != "modern" {
		t.Errorf("dialect = %q", result.DataString("dialect"))
	}

	strict := o.RunCLI("check", "test.organ", "--strict")
	strict.MustFail(t, "VALIDATION_FAILED")
	if strict.ExitCode == 0 {
		t.Error("strict check with warnings exited 0")
	}
}

func TestIntegration_CheckFatal(t *testing.T) {
	o := testutil.NewTestOrgan(t).
		WithODF("[Manual001]\nName=Great\n").
		Build()

	result := o.RunCLI("check", "test.organ")
	result.MustFail(t, "ORGAN_INVALID")
	if result.ExitCode == 0 {
		t.Error("fatal check exited 0")
	}

	o.RunCLI("check", "missing.organ").MustFail(t, "FILE_NOT_FOUND")
}

// TestIntegration_NormalizeIdempotent rewrites a legacy organ and checks that
// a second run leaves the file unchanged.
func TestIntegration_NormalizeIdempotent(t *testing.T) {
	o := testutil.NewTestOrgan(t).
		WithODF(testutil.LegacyConsoleODF()).
		WithImage("images/wood.png", 120, 80).
		Build()

	first := o.RunCLI("normalize", "test.organ")
	first.MustSucceed(t)
	if first.DataString("dialect") != "legacy" {
		t.Errorf("dialect = %q, want legacy", first.DataString("dialect"))
	}
	if changed, _ := first.Data["changed"].(bool); !changed {
		t.Error("first normalize reported no change")
	}
	o.AssertFileContains("test.organ", "[Panel000]")
	o.AssertFileContains("test.organ", `Image=images\wood.png`)
	o.AssertFileNotContains("test.organ", "[SetterElement001]")
	o.AssertFileExists("test.organ.bak")
	written := o.ReadFile("test.organ")

	second := o.RunCLI("normalize", "test.organ")
	second.MustSucceed(t)
	if second.DataString("dialect") != "modern" {
		t.Errorf("dialect = %q, want modern", second.DataString("dialect"))
	}
	if changed, _ := second.Data["changed"].(bool); changed {
		t.Error("second normalize changed the file")
	}
	if o.ReadFile("test.organ") != written {
		t.Error("file content differs after second normalize")
	}
}

func TestIntegration_NormalizeToOutput(t *testing.T) {
	o := testutil.NewTestOrgan(t).
		WithODF(testutil.ModernConsoleODF()).
		WithImage("images/wood.png", 120, 80).
		Build()

	o.RunCLI("normalize", "test.organ", "-o", "copy.organ", "--separator", "/").MustSucceed(t)
	o.AssertFileExists("copy.organ")
	o.AssertFileContains("copy.organ", "Image=images/wood.png")
	o.AssertFileNotExists("test.organ.bak")
}

func TestIntegration_DumpJSON(t *testing.T) {
	o := testutil.NewTestOrgan(t).WithODF(testutil.MinimalODF()).Build()

	result := o.RunCLI("dump", "test.organ")
	result.MustSucceed(t)
	manuals := result.DataList("manuals")
	if len(manuals) != 1 {
		t.Fatalf("manuals = %v", manuals)
	}
	if name := manuals[0].(map[string]interface{})["name"]; name != "Great" {
		t.Errorf("manual name = %v", name)
	}
	if result.DataString("church") != "Test Church" {
		t.Errorf("church = %q", result.DataString("church"))
	}
}

// TestIntegration_NewAndCatalog creates a skeleton organ and walks it through
// the catalog.
func TestIntegration_NewAndCatalog(t *testing.T) {
	o := testutil.NewTestOrgan(t).Build()

	created := o.RunCLI("new", "St. Bavo Haarlem", "--manuals", "3", "--pedals")
	created.MustSucceed(t)
	o.AssertFileExists("st-bavo-haarlem.organ")
	o.AssertFileContains("st-bavo-haarlem.organ", "HasPedals=Y")
	o.AssertFileContains("st-bavo-haarlem.organ", "NumberOfManuals=3")

	o.RunCLI("new", "St. Bavo Haarlem").MustFail(t, "FILE_EXISTS")

	check := o.RunCLI("check", "st-bavo-haarlem.organ")
	check.MustSucceed(t)
	check.AssertNoWarnings(t)

	added := o.RunCLI("catalog", "add", "st-bavo-haarlem.organ", "missing.organ")
	added.MustSucceed(t)
	added.AssertHasWarning(t, "SKIPPED")
	entries := added.DataList("entries")
	if len(entries) != 1 || entries[0].(map[string]interface{})["slug"] != "st-bavo-haarlem" {
		t.Fatalf("entries = %v", entries)
	}
	o.AssertFileExists("catalog.db")

	list := o.RunCLI("catalog", "list")
	list.MustSucceed(t)
	if len(list.DataList("entries")) != 1 {
		t.Errorf("list = %s", list.RawJSON)
	}
	stale := o.RunCLI("catalog", "list", "--stale")
	stale.MustSucceed(t)
	if len(stale.DataList("entries")) != 0 {
		t.Errorf("fresh entry reported stale: %s", stale.RawJSON)
	}

	o.RunCLI("catalog", "remove", "st-bavo-haarlem").MustSucceed(t)
	o.RunCLI("catalog", "remove", "st-bavo-haarlem").MustFail(t, "ORGAN_NOT_FOUND")
}

func TestIntegration_ConfigInitAndShow(t *testing.T) {
	o := testutil.NewTestOrgan(t).Build()

	show := o.RunCLI("config", "show")
	show.MustSucceed(t)
	if sep := show.DataString("path_separator"); sep != `\` {
		t.Errorf("path_separator = %q", sep)
	}
	if !strings.HasSuffix(show.DataString("catalog_path"), "catalog.db") {
		t.Errorf("catalog_path = %q", show.DataString("catalog_path"))
	}

	initResult := o.RunCLI("config", "init")
	initResult.MustSucceed(t)
	if created, _ := initResult.Data["created"].(bool); created {
		t.Error("config init overwrote the existing test config")
	}
}
