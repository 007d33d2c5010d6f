package localize

import (
	"encoding/json"
	"fmt"

	"github.com/diewo77/go-wills/internal/willdoc"
)

var languageNames = map[string]string{
	"es": "Spanish (Español)",
	"fr": "French (Français)",
	"de": "German (Deutsch)",
	"it": "Italian (Italiano)",
	"pt": "Portuguese (Português)",
	"hi": "Hindi (हिन्दी)",
	"ar": "Arabic (العربية)",
	"zh": "Chinese (中文)",
	"ja": "Japanese (日本語)",
	"ko": "Korean (한국어)",
	"ru": "Russian (Русский)",
}

// LanguageName maps an ISO code to the full name used in the prompt. Unknown
// codes pass through uppercased so the model still gets an explicit target.
func LanguageName(code string) string {
	if code == "" || code == "en" {
		return "English"
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	out := make([]rune, 0, len(code))
	for _, r := range code {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

const willPrompt = `You are an expert legal document generator specializing in Last Will and Testament documents.

Generate a complete, legally structured HTML document for a "Last Will and Testament" using the provided JSON data.

LANGUAGE INSTRUCTIONS:
- If language is specified and is NOT English, translate the ENTIRE document into that language
- Use proper legal terminology for the target language
- Maintain the formal legal structure and language appropriate for legal documents in that jurisdiction
- Include culturally appropriate legal phrases and formats
- Ensure all legal concepts are properly translated with correct legal terminology

CRITICAL REQUIREMENTS:
1. Use formal legal language throughout (in specified language)
2. Structure as a legally valid will document
3. Use semantic HTML with proper tags (<article>, <section>, <h1>, <h2>, <table>, <p>, etc.)
4. Include semantic class names for styling: will-document, section-title, text-paragraph, beneficiary-table, asset-table, executor-table, witness-table, signature-section, etc.
5. Output ONLY the HTML content - no markdown, no explanations

DOCUMENT STRUCTURE:
1. Title: "LAST WILL AND TESTAMENT OF [TESTATOR NAME]" (translated to target language)
2. Declaration & Revocation clause (translated)
3. Beneficiaries table with all details (translated headers)
4. Movable Assets sections (Bank Accounts, Insurance, Stocks, Mutual Funds) (translated)
5. Physical Assets (Jewellery) (translated)
6. Immovable Assets (Properties) (translated)
7. Residual Clause (translated)
8. Guardian Clause (if applicable) (translated)
9. Liabilities Clause (translated)
10. Executors section (translated)
11. Special Instructions (if any) (translated)
12. Signature and Witness sections (translated)

LEGAL LANGUAGE:
- Use formal legal terminology appropriate for the target language
- Include proper declarations and revocations in target language
- Use equivalent of "I give, devise, and bequeath" for asset distribution in target language
- Include proper witness attestation language in target language
- Add execution clauses with date and place in target language

Generate the complete HTML document now:`

// BuildPrompt embeds the serialized will and the explicit target language
// into the fixed instruction block. Monetary values are already plain numbers
// in the JSON; number formatting stays fixed-locale on render (the model is
// told to translate text, not numbers).
func BuildPrompt(doc *willdoc.Document, language string) (string, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize will data: %w", err)
	}
	return fmt.Sprintf("%s\n\nTARGET LANGUAGE: %s\n\nJSON DATA:\n%s", willPrompt, LanguageName(language), payload), nil
}
