package pdf

import (
	"fmt"
	"html/template"
)

// WrapDocument embeds a generated will fragment into a complete printable
// HTML page with the serif print stylesheet the exported PDF uses.
func WrapDocument(title, fragment string) string {
	return fmt.Sprintf(printShell, template.HTMLEscapeString(title), fragment)
}

const printShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
  body {
    font-family: 'Times New Roman', serif;
    font-size: 12pt;
    line-height: 1.6;
    color: #000;
    background: #fff;
    margin: 0;
  }
  .will-document { max-width: none; margin: 0; padding: 0; }
  .will-title {
    font-size: 18pt;
    font-weight: bold;
    text-align: center;
    margin-bottom: 2rem;
    text-decoration: underline;
  }
  .testator-name { font-size: 14pt; text-align: center; margin-bottom: 2rem; }
  .section-title {
    font-size: 13pt;
    font-weight: bold;
    margin: 1.5rem 0 0.75rem;
    page-break-after: avoid;
  }
  .subsection-title { font-size: 12pt; font-weight: bold; margin: 1rem 0 0.5rem; }
  .text-paragraph p { text-align: justify; margin: 0.5rem 0; }
  table { width: 100%%; border-collapse: collapse; margin: 0.75rem 0; page-break-inside: avoid; }
  th, td { border: 1px solid #000; padding: 4pt 6pt; font-size: 10pt; text-align: left; }
  th { background: #eee; }
  ul { margin: 0.5rem 0 0.5rem 1.5rem; }
  .signature-section { margin-top: 2rem; }
  .signature-placeholder { border-bottom: 1px solid #000; height: 2.5rem; width: 60%%; }
  .witness-signature-block { margin: 1.5rem 0; page-break-inside: avoid; }
  .will-footer { margin-top: 2rem; font-size: 10pt; text-align: center; }
</style>
</head>
<body>
%s
</body>
</html>`
