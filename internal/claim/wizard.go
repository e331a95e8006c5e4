package claim

import "github.com/liliang-cn/claimwizard/internal/domain"

// Step numbers
const (
	StepSelect = iota + 1
	StepRequirements
	StepUpload
	StepReview
)

const (
	FirstStep = StepSelect
	LastStep  = StepReview
)

// Step describes one wizard page: its label, the template that renders
// it and the condition that must hold before leaving it forward.
type Step struct {
	Number   int
	Label    string
	Template string
	Ready    func(domain.ClaimState) bool
}

func always(domain.ClaimState) bool { return true }

// Steps is the wizard table, indexed by Number-1
var Steps = []Step{
	{
		Number:   StepSelect,
		Label:    "Select Conditions",
		Template: "step_select",
		Ready:    func(s domain.ClaimState) bool { return len(s.Selected) > 0 },
	},
	{Number: StepRequirements, Label: "Review Requirements", Template: "step_requirements", Ready: always},
	{Number: StepUpload, Label: "Upload Evidence", Template: "step_upload", Ready: always},
	{Number: StepReview, Label: "Review & Submit", Template: "step_review", Ready: always},
}

// StepFor returns the table row for n, clamped into range
func StepFor(n int) Step {
	return Steps[clamp(n)-1]
}

// Labels returns the step labels in order
func Labels() []string {
	labels := make([]string, len(Steps))
	for i, s := range Steps {
		labels[i] = s.Label
	}
	return labels
}

// NewState returns the initial claim state
func NewState() domain.ClaimState {
	return domain.ClaimState{
		Step:      FirstStep,
		Selected:  []domain.Condition{},
		Documents: []domain.Document{},
	}
}

// CanContinue reports whether the caller may move forward from the
// current step.
func CanContinue(s domain.ClaimState) bool {
	return StepFor(s.Step).Ready(s)
}

// Wizard is the step state machine. It performs no validation; callers
// gate forward moves with CanContinue.
type Wizard struct {
	step int
}

// NewWizard returns a wizard positioned at step, clamped into range
func NewWizard(step int) *Wizard {
	return &Wizard{step: clamp(step)}
}

// Step returns the current step
func (w *Wizard) Step() int {
	return w.step
}

// Continue advances one step. No-op on the last step.
func (w *Wizard) Continue() {
	if w.step < LastStep {
		w.step++
	}
}

// Back goes back one step. No-op on the first step.
func (w *Wizard) Back() {
	if w.step > FirstStep {
		w.step--
	}
}

// IsLast reports whether the wizard is on the terminal step
func (w *Wizard) IsLast() bool {
	return w.step == LastStep
}

func clamp(n int) int {
	if n < FirstStep {
		return FirstStep
	}
	if n > LastStep {
		return LastStep
	}
	return n
}
