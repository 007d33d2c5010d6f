package willdoc

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// The document is a fixed, ordered list of sections. Each renderer is a pure
// function over its slice of the document; sections whose backing data is
// empty are skipped via their condition. Declaration, the residual clause,
// execution, attestation and the footer are always emitted.
type section struct {
	name   string
	when   func(*Document) bool
	render func(*Document, *strings.Builder)
}

var sections = []section{
	{name: "header", render: renderHeader},
	{name: "declaration", render: renderDeclaration},
	{name: "beneficiaries", when: func(d *Document) bool { return len(d.Beneficiaries) > 0 }, render: renderBeneficiaries},
	{name: "movable-assets", when: (*Document).hasMovableAssets, render: renderMovableAssets},
	{name: "physical-assets", when: func(d *Document) bool { return len(d.PhysicalAssets.Jewellery) > 0 }, render: renderPhysicalAssets},
	{name: "immovable-assets", when: func(d *Document) bool { return len(d.ImmovableAssets) > 0 }, render: renderImmovableAssets},
	{name: "residual", render: renderResidualClause},
	{name: "executors", when: func(d *Document) bool { return len(d.Executors) > 0 }, render: renderExecutors},
	{name: "guardian", when: func(d *Document) bool { return d.GuardianClause != nil }, render: renderGuardian},
	{name: "liabilities", when: func(d *Document) bool { return len(d.Liabilities) > 0 }, render: renderLiabilities},
	{name: "special-instructions", when: func(d *Document) bool { return d.SpecialInstructions != "" }, render: renderSpecialInstructions},
	{name: "execution", render: renderExecution},
	{name: "witnesses", render: renderWitnesses},
	{name: "footer", render: renderFooter},
}

// Render produces the complete English will document. It is deterministic for
// a given Document (the only clock is the injected GeneratedOn) and never
// fails: missing optional fields degrade to placeholders.
func Render(doc *Document) string {
	doc.Normalize()
	var b strings.Builder
	b.WriteString(`<div class="will-document">` + "\n")
	for _, s := range sections {
		if s.when == nil || s.when(doc) {
			s.render(doc, &b)
		}
	}
	b.WriteString(`</div>` + "\n")
	return b.String()
}

func esc(s string) string { return template.HTMLEscapeString(s) }

// orNA substitutes the placeholder for empty optional text.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return esc(s)
}

// first returns the first non-empty value, escaped, or the placeholder.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return esc(v)
		}
	}
	return "N/A"
}

func money(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return FormatINR(v)
}

func renderHeader(d *Document, b *strings.Builder) {
	b.WriteString(`<header class="will-header">` + "\n")
	b.WriteString(`<h1 class="will-title">LAST WILL AND TESTAMENT</h1>` + "\n")
	fmt.Fprintf(b, `<h2 class="testator-name">OF %s</h2>`+"\n", esc(strings.ToUpper(d.Testator.FullName)))
	b.WriteString(`</header>` + "\n")
}

func renderDeclaration(d *Document, b *strings.Builder) {
	t := d.Testator
	occupation := ""
	if t.Occupation != "" {
		occupation = esc(t.Occupation) + " by profession, "
	}
	idClause := ""
	if t.IDNumber != "" {
		idClause = "bearing identification number " + esc(t.IDNumber) + ", "
	}
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">I. DECLARATION AND REVOCATION OF PRIOR WILLS</h2>` + "\n")
	b.WriteString(`<div class="text-paragraph">` + "\n")
	fmt.Fprintf(b, `<p>I, <strong>%s</strong>, aged %d years, %sresiding at %s, %sbeing of sound mind and disposing memory, and not acting under duress, menace, fraud, or undue influence of any person whomsoever, do hereby make, publish, and declare this to be my Last Will and Testament, hereby expressly revoking all wills and codicils heretofore made by me.</p>`+"\n",
		esc(t.FullName), t.Age, occupation, esc(t.Address), idClause)
	b.WriteString(`<p>I declare that I am making this Will of my own free will and volition, without any coercion, pressure, or undue influence from any person whatsoever. I am fully aware of the nature and extent of my property and of the claims of all persons who might expect to benefit from my estate.</p>` + "\n")
	b.WriteString(`</div>` + "\n</section>\n")
}

func renderBeneficiaries(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">II. BENEFICIARIES</h2>` + "\n")
	b.WriteString(`<div class="text-paragraph"><p>I hereby declare that the following persons are my beneficiaries under this Will:</p></div>` + "\n")
	b.WriteString(`<div class="beneficiary-table"><table>` + "\n")
	b.WriteString(`<thead><tr><th>S.No.</th><th>Name of Beneficiary</th><th>Relation to Testator</th><th>Age</th><th>Identification Number</th><th>Address</th></tr></thead>` + "\n<tbody>\n")
	for i, ben := range d.Beneficiaries {
		age := "N/A"
		if ben.Age > 0 {
			age = strconv.Itoa(ben.Age) + " years"
		}
		fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`+"\n",
			i+1, esc(ben.Name), esc(ben.Relation), age, orNA(ben.IDNumber), esc(ben.Address))
	}
	b.WriteString("</tbody></table></div>\n</section>\n")
}

func renderMovableAssets(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">III. DISPOSITION OF MOVABLE ASSETS</h2>` + "\n")

	if accounts := d.MovableAssets.BankAccounts; len(accounts) > 0 {
		openAssetSubsection(b, "A. Bank Accounts and Deposits", "bank accounts and deposits")
		b.WriteString(`<thead><tr><th>S.No.</th><th>Bank Name &amp; Branch</th><th>Account Number</th><th>Account Type</th><th>Beneficiary</th><th>% Share</th></tr></thead>` + "\n<tbody>\n")
		for i, a := range accounts {
			bank := esc(a.BankName)
			if a.Branch != "" {
				bank += ", " + esc(a.Branch)
			}
			fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s%%</td></tr>`+"\n",
				i+1, bank, esc(a.AccountNumber), esc(a.AccountType), esc(d.BeneficiaryName(a.BeneficiaryID)), esc(a.SharePercentage))
		}
		closeAssetSubsection(b)
	}

	if policies := d.MovableAssets.InsurancePolicies; len(policies) > 0 {
		openAssetSubsection(b, "B. Insurance Policies", "insurance policies")
		b.WriteString(`<thead><tr><th>S.No.</th><th>Insurance Company</th><th>Policy Number</th><th>Policy Type</th><th>Sum Assured</th><th>Beneficiary</th><th>% Share</th></tr></thead>` + "\n<tbody>\n")
		for i, p := range policies {
			fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s%%</td></tr>`+"\n",
				i+1, esc(p.Company), esc(p.PolicyNumber), esc(p.PolicyType), money(p.SumAssured), esc(d.BeneficiaryName(p.BeneficiaryID)), esc(p.SharePercentage))
		}
		closeAssetSubsection(b)
	}

	if stocks := d.MovableAssets.Stocks; len(stocks) > 0 {
		openAssetSubsection(b, "C. Stocks and Securities", "stocks and securities")
		b.WriteString(`<thead><tr><th>S.No.</th><th>Company/Brokerage</th><th>Account/Certificate Number</th><th>Number of Shares</th><th>Beneficiary</th><th>% Share</th></tr></thead>` + "\n<tbody>\n")
		for i, s := range stocks {
			shares := "N/A"
			if s.NumberOfShares > 0 {
				shares = strconv.Itoa(s.NumberOfShares)
			}
			fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s%%</td></tr>`+"\n",
				i+1, esc(s.Company), first(s.CertificateNumber, s.AccountNumber), shares, esc(d.BeneficiaryName(s.BeneficiaryID)), esc(s.SharePercentage))
		}
		closeAssetSubsection(b)
	}

	if funds := d.MovableAssets.MutualFunds; len(funds) > 0 {
		openAssetSubsection(b, "D. Mutual Fund Investments", "mutual fund investments")
		b.WriteString(`<thead><tr><th>S.No.</th><th>Fund Name/Distributor</th><th>Folio/Account Number</th><th>Number of Units</th><th>Beneficiary</th><th>% Share</th></tr></thead>` + "\n<tbody>\n")
		for i, f := range funds {
			units := "N/A"
			if f.Units > 0 {
				units = strconv.FormatFloat(f.Units, 'f', -1, 64)
			}
			fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s%%</td></tr>`+"\n",
				i+1, first(f.FundName, f.Distributor), first(f.FolioNumber, f.AccountNumber), units, esc(d.BeneficiaryName(f.BeneficiaryID)), esc(f.SharePercentage))
		}
		closeAssetSubsection(b)
	}

	b.WriteString("</section>\n")
}

func openAssetSubsection(b *strings.Builder, title, noun string) {
	b.WriteString(`<div class="asset-subsection">` + "\n")
	fmt.Fprintf(b, `<h3 class="subsection-title">%s</h3>`+"\n", title)
	fmt.Fprintf(b, `<div class="text-paragraph"><p>I give, devise, and bequeath the following %s to the respective beneficiaries mentioned herein:</p></div>`+"\n", noun)
	b.WriteString(`<div class="asset-table"><table>` + "\n")
}

func closeAssetSubsection(b *strings.Builder) {
	b.WriteString("</tbody></table></div>\n</div>\n")
}

func renderPhysicalAssets(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">IV. DISPOSITION OF PHYSICAL ASSETS</h2>` + "\n")
	openAssetSubsection(b, "A. Jewellery and Precious Items", "jewellery and precious items")
	b.WriteString(`<thead><tr><th>S.No.</th><th>Type/Description</th><th>Invoice Number</th><th>Estimated Value</th><th>Location</th><th>Beneficiary</th><th>% Share</th></tr></thead>` + "\n<tbody>\n")
	for i, j := range d.PhysicalAssets.Jewellery {
		fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s%%</td></tr>`+"\n",
			i+1, first(j.Description, j.Type), orNA(j.InvoiceNumber), money(j.EstimatedValue), orNA(j.Location), esc(d.BeneficiaryName(j.BeneficiaryID)), esc(j.SharePercentage))
	}
	closeAssetSubsection(b)
	b.WriteString("</section>\n")
}

func renderImmovableAssets(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">V. DISPOSITION OF IMMOVABLE ASSETS</h2>` + "\n")
	b.WriteString(`<div class="text-paragraph"><p>I give, devise, and bequeath the following immovable properties to the respective beneficiaries mentioned herein:</p></div>` + "\n")
	b.WriteString(`<div class="asset-table"><table>` + "\n")
	b.WriteString(`<thead><tr><th>S.No.</th><th>Property Type</th><th>Description/Name</th><th>Location</th><th>Registration Number</th><th>Estimated Value</th><th>Beneficiary</th><th>% Share</th></tr></thead>` + "\n<tbody>\n")
	for i, a := range d.ImmovableAssets {
		fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s%%</td></tr>`+"\n",
			i+1, esc(a.PropertyType), first(a.Description, a.Name), esc(a.Location), first(a.RegistrationNumber, a.SurveyNumber), money(a.EstimatedValue), esc(d.BeneficiaryName(a.BeneficiaryID)), esc(a.SharePercentage))
	}
	b.WriteString("</tbody></table></div>\n</section>\n")
}

const defaultResidualClause = "All the rest, residue, and remainder of my estate, both real and personal, of whatsoever nature and wheresoever situated, which I may own or be entitled to at the time of my death, not otherwise specifically disposed of by this Will or any codicil hereto, I give, devise, and bequeath to my beneficiaries as mentioned in this Will, to be divided among them in equal shares, or as they may mutually agree, or as determined by my executors in their absolute discretion."

func renderResidualClause(d *Document, b *strings.Builder) {
	clause := defaultResidualClause
	if d.ResidualClause != "" {
		clause = esc(d.ResidualClause)
	}
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">VI. RESIDUAL CLAUSE</h2>` + "\n")
	fmt.Fprintf(b, `<div class="text-paragraph"><p>%s</p></div>`+"\n", clause)
	b.WriteString("</section>\n")
}

func renderExecutors(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">VII. EXECUTORS</h2>` + "\n")
	b.WriteString(`<div class="text-paragraph"><p>I hereby nominate and appoint the following person(s) to be the Executor(s) of this my Last Will and Testament, with full power to administer my estate, both real and personal, forming part of my estate, without the necessity of obtaining any court order or approval:</p></div>` + "\n")
	b.WriteString(`<div class="executor-table"><table>` + "\n")
	b.WriteString(`<thead><tr><th>NAME</th><th>RELATIONSHIP</th><th>ADDRESS</th><th>PHONE</th><th>PRIMARY EXECUTOR</th></tr></thead>` + "\n<tbody>\n")
	for _, e := range d.Executors {
		primary := "No"
		if e.IsPrimary {
			primary = "Yes"
		}
		fmt.Fprintf(b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`+"\n",
			esc(e.Name), esc(e.Relation), esc(e.Address), orNA(e.Phone), primary)
	}
	b.WriteString("</tbody></table></div>\n")
	b.WriteString(`<div class="text-paragraph"><p>If the primary Executor named above is unable or unwilling to serve, or ceases to serve for any reason, then the alternate Executor (if named) shall serve in their place.</p></div>` + "\n")
	b.WriteString("</section>\n")
}

func renderGuardian(d *Document, b *strings.Builder) {
	g := d.GuardianClause
	condition := "In the event that any of my children are minors at the time of my death,"
	if g.Condition != "" {
		condition = esc(g.Condition)
	}
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">VIII. APPOINTMENT OF GUARDIAN</h2>` + "\n")
	b.WriteString(`<div class="text-paragraph">` + "\n")
	terminator := "."
	if len(g.MinorChildren) > 0 {
		terminator = ", namely:"
	}
	fmt.Fprintf(b, `<p>%s I hereby nominate, constitute, and appoint <strong>%s</strong>, %s, residing at %s, as the guardian of the person and property of my minor children%s</p>`+"\n",
		condition, esc(g.Guardian.Name), esc(g.Guardian.Relation), esc(g.Guardian.Address), terminator)
	if len(g.MinorChildren) > 0 {
		b.WriteString("<ul>\n")
		for _, child := range g.MinorChildren {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(child))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString(`<p>I direct that no bond or other security shall be required of the said guardian in any jurisdiction, and I request that the said guardian serve without compensation, although the guardian may be reimbursed for reasonable expenses incurred in the performance of guardian duties.</p>` + "\n")
	b.WriteString("</div>\n</section>\n")
}

func renderLiabilities(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">IX. PAYMENT OF DEBTS AND LIABILITIES</h2>` + "\n")
	b.WriteString(`<div class="text-paragraph">` + "\n")
	b.WriteString(`<p>I direct that all my just debts, funeral expenses, and the expenses of administering my estate be paid as soon as practicable after my death. The following specific liabilities shall be settled from my estate:</p>` + "\n")
	b.WriteString("<ul>\n")
	for _, l := range d.Liabilities {
		fmt.Fprintf(b, "<li>%s</li>\n", esc(l))
	}
	b.WriteString("</ul>\n")
	b.WriteString(`<p>On my death, the beneficiaries shall equally bear the administration expenses of Will Execution and shall discharge my debts/liabilities from respective assets attached to the liabilities if any.</p>` + "\n")
	b.WriteString("</div>\n</section>\n")
}

func renderSpecialInstructions(d *Document, b *strings.Builder) {
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">X. SPECIAL INSTRUCTIONS</h2>` + "\n")
	fmt.Fprintf(b, `<div class="text-paragraph"><p>%s</p></div>`+"\n", esc(d.SpecialInstructions))
	b.WriteString("</section>\n")
}

func renderExecution(d *Document, b *strings.Builder) {
	date := d.Date()
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">XI. EXECUTION</h2>` + "\n")
	b.WriteString(`<div class="execution-content"><div class="execution-layout">` + "\n")
	fmt.Fprintf(b, `<div class="execution-left"><p>IN WITNESS WHEREOF, I have hereunto set my hand and seal this %s day of %s, %d, at %s.</p></div>`+"\n",
		Ordinal(date.Day()), date.Month().String(), date.Year(), esc(d.PlaceOfWill))
	b.WriteString(`<div class="execution-right">` + "\n")
	b.WriteString(`<div class="signature-section"><div class="signature-label">Signature of Testator</div>` + "\n")
	fmt.Fprintf(b, `<div class="testator-signature-block"><div class="testator-name">%s</div></div></div>`+"\n", esc(strings.ToUpper(d.Testator.FullName)))
	b.WriteString(`<div class="execution-details">` + "\n")
	fmt.Fprintf(b, `<div class="detail-row"><span class="detail-label">Date:</span> <span class="detail-value">%s</span></div>`+"\n", date.Format("January 2, 2006"))
	fmt.Fprintf(b, `<div class="detail-row"><span class="detail-label">Place:</span> <span class="detail-value">%s</span></div>`+"\n", esc(d.PlaceOfWill))
	b.WriteString("</div>\n</div>\n</div></div>\n</section>\n")
}

func renderWitnesses(d *Document, b *strings.Builder) {
	witnesses := d.ValidWitnesses()
	b.WriteString(`<section class="will-section">` + "\n")
	b.WriteString(`<h2 class="section-title">XII. WITNESS ATTESTATION</h2>` + "\n")
	if len(witnesses) < 2 {
		// Finalize-time validation requires two named witnesses before this
		// renderer can be reached through the normal path; the in-document
		// banner covers direct/preview renders of incomplete data.
		b.WriteString(`<div class="text-paragraph"><div class="witness-error" style="color: red; font-weight: bold;">` + "\n")
		b.WriteString(`<p><strong>ERROR: No valid witnesses found!</strong></p>` + "\n")
		b.WriteString(`<p>At least two witnesses with complete information are required for a valid will.</p>` + "\n")
		b.WriteString(`<p>Please go back to the witnesses section and add witness information.</p>` + "\n")
		b.WriteString("</div></div>\n</section>\n")
		return
	}
	fmt.Fprintf(b, `<div class="text-paragraph"><p>The foregoing instrument was signed, published, and declared by the above-named Testator, <strong>%s</strong>, as his/her Last Will and Testament, in our joint presence, and we, at his/her request, in his/her presence, and in the presence of each other, have hereunto subscribed our names as witnesses on the date last above written.</p></div>`+"\n", esc(d.Testator.FullName))
	b.WriteString(`<div class="witness-table"><table>` + "\n")
	b.WriteString(`<thead><tr><th>WITNESS NAME</th><th>ADDRESS</th><th>OCCUPATION</th><th>ID NUMBER</th></tr></thead>` + "\n<tbody>\n")
	for _, w := range witnesses {
		fmt.Fprintf(b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`+"\n",
			esc(w.Name), orNA(w.Address), orNA(w.Occupation), orNA(w.IDNumber))
	}
	b.WriteString("</tbody></table></div>\n")
	b.WriteString(`<div class="witness-signatures"><div class="signature-grid">` + "\n")
	for i, w := range witnesses {
		b.WriteString(`<div class="witness-signature-block">` + "\n")
		fmt.Fprintf(b, `<div class="signature-line"><div class="signature-placeholder"></div><div class="signature-label">Signature of Witness %d</div></div>`+"\n", i+1)
		b.WriteString(`<div class="witness-details">` + "\n")
		fmt.Fprintf(b, `<p><strong>Name:</strong> %s</p>`+"\n", esc(w.Name))
		fmt.Fprintf(b, `<p><strong>Address:</strong> %s</p>`+"\n", orNA(w.Address))
		fmt.Fprintf(b, `<p><strong>Phone:</strong> %s</p>`+"\n", orNA(w.Phone))
		fmt.Fprintf(b, `<p><strong>Occupation:</strong> %s</p>`+"\n", orNA(w.Occupation))
		fmt.Fprintf(b, `<p><strong>ID Number:</strong> %s</p>`+"\n", orNA(w.IDNumber))
		b.WriteString("</div>\n</div>\n")
	}
	b.WriteString("</div></div>\n</section>\n")
}

func renderFooter(d *Document, b *strings.Builder) {
	b.WriteString(`<footer class="will-footer"><div class="document-info">` + "\n")
	b.WriteString(`<p><strong>End of Last Will and Testament</strong></p>` + "\n")
	fmt.Fprintf(b, `<p>This Will was executed on %s at %s.</p>`+"\n", d.Date().Format("January 2, 2006"), esc(d.PlaceOfWill))
	fmt.Fprintf(b, `<p>Generated on %s</p>`+"\n", d.GeneratedOn.Format("January 2, 2006"))
	b.WriteString("</div></footer>\n")
}
