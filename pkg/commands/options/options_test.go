package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/leadsheet/pkg/harmony"
)

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	out := color.Output
	color.Output = &buf
	defer func() { color.Output = out }()

	o := &OutputOptions{JSON: true}
	if err := o.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("expected the error to be printed, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"error":"boom"}` {
		t.Fatalf("unexpected output %q", buf.String())
	}

	o.JSON = false
	if err := o.HandleError(errors.New("boom")); err == nil {
		t.Fatal("expected the error to be returned")
	}
}

func TestTimeSignatureArgs(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	o := &TimeSignatureOptions{}
	AddTimeSignatureArgs(cmd, o)
	if err := cmd.Flags().Parse([]string{"--time", "6/8"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts, err := o.GetTimeSignature()
	if err != nil || ts != harmony.SixEight {
		t.Fatalf("expected 6/8, got %v (%v)", ts, err)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	out := color.Output
	color.Output = &buf
	defer func() { color.Output = out }()

	o := &OutputOptions{}
	if err := o.PrintJSON(map[string]int{"size": 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "{\"size\":8}\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
