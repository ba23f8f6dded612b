package acceptance_test

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVerify_ValidFiles(t *testing.T) {
	dir := newProject(t, map[string]string{
		"a.leap": tidy,
		"b.leap": ".struct team\n    members: list[person]\n    lead: option[person]\n",
	})

	stdout, stderr, code := runLeap(t, dir, "verify", "a.leap", "b.leap")

	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout %q stderr %q", stdout, stderr)
	}
}

func TestVerify_SyntaxError(t *testing.T) {
	dir := newProject(t, map[string]string{"a.leap": bad})

	_, stderr, code := runLeap(t, dir, "verify", "a.leap")

	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "a.leap:2:") {
		t.Errorf("report should name file and line, got %q", stderr)
	}
	if !strings.Contains(stderr, "found 1 error in 1 file") {
		t.Errorf("report should end with a summary, got %q", stderr)
	}
}

func TestVerify_ReportsEveryFile(t *testing.T) {
	dir := newProject(t, map[string]string{
		"a.leap": bad,
		"b.leap": ".struct b\n    x: strr\n",
	})

	_, stderr, code := runLeap(t, dir, "verify", "a.leap", "b.leap")

	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	ia := strings.Index(stderr, "a.leap:2:")
	ib := strings.Index(stderr, "b.leap:2:")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("expected a.leap then b.leap in report, got %q", stderr)
	}
	if !strings.Contains(stderr, "unknown type `strr`") {
		t.Errorf("expected unknown type diagnostic, got %q", stderr)
	}
}

func TestVerify_JSON(t *testing.T) {
	dir := newProject(t, map[string]string{"a.leap": bad})

	stdout, _, code := runLeap(t, dir, "verify", "--json", "a.leap")

	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	var got struct {
		Valid       bool `json:"valid"`
		Diagnostics []struct {
			Path    string `json:"path"`
			Line    int    `json:"line"`
			Message string `json:"message"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if got.Valid || len(got.Diagnostics) != 1 || got.Diagnostics[0].Line != 2 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestPrintStd(t *testing.T) {
	dir := newProject(t, nil)

	stdout, _, code := runLeap(t, dir, "print-std")

	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, ".enum option[t]") || !strings.HasSuffix(stdout, "\n") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestNoSubcommand(t *testing.T) {
	dir := newProject(t, nil)

	_, stderr, code := runLeap(t, dir)

	if code != 2 {
		t.Errorf("exit %d, want 2", code)
	}
	if !strings.Contains(stderr, "missing command") {
		t.Errorf("stderr = %q", stderr)
	}
}
