package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesScript(t *testing.T) {
	in := `<p>hello</p><script>alert("x")</script>`
	out := Sanitize(in)
	if strings.Contains(out, "script") {
		t.Errorf("Sanitize() kept script tag: %q", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("Sanitize() dropped safe markup: %q", out)
	}
}

func TestSanitize_KeepsFormatting(t *testing.T) {
	in := `<p><strong>bold</strong> and <u>underline</u> and <a href="https://example.com" rel="nofollow">link</a></p>`
	out := Sanitize(in)
	for _, want := range []string{"<strong>", "<u>", "<a "} {
		if !strings.Contains(out, want) {
			t.Errorf("Sanitize() removed %s: %q", want, out)
		}
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitize_RemovesEventHandlers(t *testing.T) {
	in := `<p onclick="alert('x')">text</p>`
	out := Sanitize(in)
	if strings.Contains(out, "onclick") {
		t.Errorf("Sanitize() kept onclick: %q", out)
	}
}

func TestIsPlainText(t *testing.T) {
	if !IsPlainText("just words") {
		t.Error("IsPlainText() = false for plain text")
	}
	if IsPlainText("<p>markup</p>") {
		t.Error("IsPlainText() = true for HTML")
	}
}
