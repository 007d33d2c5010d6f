package localize

import "github.com/microcosm-cc/bluemonday"

// The model's HTML is untrusted text; it passes through a policy that keeps
// the document's structural markup and class hooks and drops everything
// executable before it can reach a render surface.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "span")
	p.AllowAttrs("class").Globally()
	return p
}

// Sanitize scrubs localized output down to safe markup.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
