package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"github.com/aidanlsb/odfkit/internal/organ"
)

func TestChoiceValue(t *testing.T) {
	v := newChoiceValue("yaml", "yaml", "json")
	if v.String() != "yaml" || v.Type() != "string" {
		t.Fatalf("default = %q", v.String())
	}
	if err := v.Set(" JSON "); err != nil || v.String() != "json" {
		t.Errorf("Set(JSON) = %v, value %q", err, v.String())
	}
	err := v.Set("toml")
	if err == nil || !strings.Contains(err.Error(), "yaml, json") {
		t.Errorf("Set(toml) err = %v", err)
	}
	if v.String() != "json" {
		t.Errorf("rejected value changed the flag to %q", v.String())
	}
}

func TestFaultCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fault.Wrap(errors.New("open"), ftag.With(ftag.NotFound)), ErrFileNotFound},
		{"invalid", fault.Wrap(errors.New("no organ"), ftag.With(ftag.InvalidArgument)), ErrOrganInvalid},
		{"cancelled", fault.Wrap(context.Canceled, ftag.With(ftag.Cancelled)), ErrCancelled},
		{"untagged", errors.New("boom"), ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := faultCode(tt.err); got != tt.want {
				t.Errorf("faultCode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHandleFaultText(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() { jsonOutput = prevJSON })
	jsonOutput = false

	err := handleFault(fault.Wrap(errors.New("open x"),
		fmsg.WithDesc("read organ file", "Could not read x"),
		ftag.With(ftag.NotFound)))
	if err == nil || !strings.Contains(err.Error(), "Could not read x") {
		t.Errorf("handleFault = %v, want the user-facing issue included", err)
	}
}

func TestIssueWarnings(t *testing.T) {
	got := issueWarnings([]organ.Issue{
		{Level: organ.LevelWarning, Code: organ.CodeMalformedSection, Section: "Stop003", Message: "missing"},
		{Level: organ.LevelNotice, Code: organ.CodeDanglingReference, Message: "dropped"},
	})
	if len(got) != 2 {
		t.Fatalf("warnings = %+v", got)
	}
	if got[0].Code != WarnMalformedSection || got[0].Ref != "Stop003" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Code != WarnDanglingReference || got[1].Ref != "" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestCountLevels(t *testing.T) {
	w, n := countLevels([]organ.Issue{
		{Level: organ.LevelError},
		{Level: organ.LevelWarning},
		{Level: organ.LevelNotice},
	})
	if w != 2 || n != 1 {
		t.Errorf("countLevels = %d, %d", w, n)
	}
}
