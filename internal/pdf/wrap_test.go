package pdf

import (
	"strings"
	"testing"
)

func TestWrapDocument(t *testing.T) {
	out := WrapDocument("Will of Jane Doe", `<div class="will-document"><p>body</p></div>`)

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatal("missing doctype")
	}
	if !strings.Contains(out, "<title>Will of Jane Doe</title>") {
		t.Fatal("missing title")
	}
	if !strings.Contains(out, `<div class="will-document"><p>body</p></div>`) {
		t.Fatal("fragment not embedded")
	}
	if !strings.Contains(out, "width: 100%;") {
		t.Fatal("print stylesheet mangled")
	}
}

func TestWrapDocumentEscapesTitle(t *testing.T) {
	out := WrapDocument(`<script>x</script>`, "<p>ok</p>")
	if strings.Contains(out, "<title><script>") {
		t.Fatal("title not escaped")
	}
}
