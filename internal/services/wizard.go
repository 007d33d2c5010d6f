package services

// Wizard steps. CurrentStep on a will records the furthest step whose data has
// been saved, plus one; it moves forward only, so going back to edit an
// earlier step never loses progress.
const (
	StepTestator      = 1
	StepBeneficiaries = 2
	StepAssets        = 3
	StepExecutors     = 4
	StepWitnesses     = 5
	StepReview        = 6
	StepPreview       = 7
)

// ValidStep reports whether n names a wizard step.
func ValidStep(n int) bool { return n >= StepTestator && n <= StepPreview }

// advanceStep computes the new CurrentStep after saving step: one past the
// saved step, never going backwards and never past the last step.
func advanceStep(current, saved int) int {
	next := saved + 1
	if next > StepPreview {
		next = StepPreview
	}
	if next < current {
		next = current
	}
	return next
}
