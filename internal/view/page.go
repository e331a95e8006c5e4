// Package view projects a session into what the wizard pages display.
package view

import (
	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
)

// Status shown on the review step
const StatusReady = "Ready to Submit"

// UploadHint is the drop zone caption
const UploadHint = "Drag and drop files here or click to browse"

// Notice is an informational guard shown instead of step content
type Notice struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// StepLink is one entry of the progress bar
type StepLink struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Done   bool   `json:"done"`
}

// RequirementGroup lists the evidence needed for one condition
type RequirementGroup struct {
	Condition domain.Condition `json:"condition"`
	Items     []string         `json:"items"`
}

// Page is the projection rendered by the HTML templates and returned by
// the wizard API
type Page struct {
	Step        int        `json:"step"`
	StepLabel   string     `json:"step_label"`
	Template    string     `json:"template"`
	Steps       []StepLink `json:"steps"`
	Progress    int        `json:"progress"`
	CanBack     bool       `json:"can_back"`
	CanContinue bool       `json:"can_continue"`
	Notice      *Notice    `json:"notice,omitempty"`

	Query        string                   `json:"query,omitempty"`
	Conditions   []domain.ConditionOption `json:"conditions,omitempty"`
	Selected     []domain.Condition       `json:"selected"`
	Requirements []RequirementGroup       `json:"requirements,omitempty"`
	Documents    []domain.Document        `json:"documents"`
	UploadHint   string                   `json:"upload_hint,omitempty"`
	Status       string                   `json:"status,omitempty"`
	CanSubmit    bool                     `json:"can_submit"`

	Chat domain.ChatView `json:"chat"`
}

// Input is everything a page is projected from
type Input struct {
	Claim   domain.ClaimState
	Chat    domain.ChatState
	Catalog []domain.Condition
	Query   string
}

type builder func(p *Page, in Input)

var builders = map[string]builder{
	"step_select":       buildSelect,
	"step_requirements": buildRequirements,
	"step_upload":       buildUpload,
	"step_review":       buildReview,
}

// Project builds the page for the current step
func Project(in Input) *Page {
	step := claim.StepFor(in.Claim.Step)
	w := claim.NewWizard(step.Number)

	p := &Page{
		Step:        step.Number,
		StepLabel:   step.Label,
		Template:    step.Template,
		Steps:       stepLinks(step.Number),
		Progress:    step.Number * 100 / len(claim.Steps),
		CanBack:     step.Number > claim.FirstStep,
		CanContinue: claim.CanContinue(in.Claim) && !w.IsLast(),
		Selected:    nonNil(in.Claim.Selected),
		Documents:   nonNilDocs(in.Claim.Documents),
		Chat:        Chat(in.Chat),
	}

	if build, ok := builders[step.Template]; ok {
		build(p, in)
	}
	return p
}

// Chat projects the chat panel state
func Chat(c domain.ChatState) domain.ChatView {
	msgs := c.Messages
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return domain.ChatView{Open: c.Open, Typing: c.Typing(), Messages: msgs}
}

// Options annotates the filtered catalog with selection flags
func Options(catalog []domain.Condition, selected []domain.Condition, query string) []domain.ConditionOption {
	matches := claim.Filter(catalog, query)
	out := make([]domain.ConditionOption, len(matches))
	for i, c := range matches {
		out[i] = domain.ConditionOption{Condition: c, Selected: claim.IsSelected(selected, c.ID)}
	}
	return out
}

func buildSelect(p *Page, in Input) {
	p.Query = in.Query
	p.Conditions = Options(in.Catalog, in.Claim.Selected, in.Query)
	if len(p.Conditions) == 0 {
		p.Notice = &Notice{
			Title: "No Matching Conditions",
			Body:  "No conditions match your search. Try a different term.",
		}
	}
}

func buildRequirements(p *Page, in Input) {
	if len(in.Claim.Selected) == 0 {
		p.Notice = &Notice{
			Title: "No Conditions Selected",
			Body:  "Please go back and select at least one condition first.",
		}
		return
	}
	p.Requirements = make([]RequirementGroup, len(in.Claim.Selected))
	for i, c := range in.Claim.Selected {
		p.Requirements[i] = RequirementGroup{Condition: c, Items: catalog.Requirements}
	}
}

func buildUpload(p *Page, in Input) {
	p.UploadHint = UploadHint
	if len(in.Claim.Documents) == 0 {
		p.Notice = &Notice{
			Title: "No Documents Yet",
			Body:  "No documents uploaded yet.",
		}
	}
}

func buildReview(p *Page, in Input) {
	if len(in.Claim.Selected) == 0 {
		p.Notice = &Notice{
			Title: "Missing Information",
			Body:  "Please complete all previous steps before reviewing your claim.",
		}
		return
	}
	p.Status = StatusReady
	p.CanSubmit = true
}

func stepLinks(current int) []StepLink {
	links := make([]StepLink, len(claim.Steps))
	for i, s := range claim.Steps {
		links[i] = StepLink{
			Number: s.Number,
			Label:  s.Label,
			Active: s.Number == current,
			Done:   s.Number < current,
		}
	}
	return links
}

func nonNil(c []domain.Condition) []domain.Condition {
	if c == nil {
		return []domain.Condition{}
	}
	return c
}

func nonNilDocs(d []domain.Document) []domain.Document {
	if d == nil {
		return []domain.Document{}
	}
	return d
}
