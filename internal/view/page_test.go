package view

import (
	"bytes"
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
)

func input(step int, selected []domain.Condition, docs []domain.Document) Input {
	return Input{
		Claim:   domain.ClaimState{Step: step, Selected: selected, Documents: docs},
		Catalog: catalog.MustLoad().Conditions(),
	}
}

func TestProject_SelectStep(t *testing.T) {
	cat := catalog.MustLoad()
	ptsd, _ := cat.Get(1)

	p := Project(input(claim.StepSelect, nil, nil))
	assert.Equal(t, "Select Conditions", p.StepLabel)
	assert.Equal(t, 25, p.Progress)
	assert.False(t, p.CanBack)
	assert.False(t, p.CanContinue)
	assert.Len(t, p.Conditions, 3)
	assert.Nil(t, p.Notice)
	assert.True(t, p.Steps[0].Active)

	in := input(claim.StepSelect, []domain.Condition{ptsd}, nil)
	in.Query = "ptsd"
	p = Project(in)
	assert.True(t, p.CanContinue)
	require.Len(t, p.Conditions, 1)
	assert.True(t, p.Conditions[0].Selected)

	in.Query = "migraine"
	p = Project(in)
	assert.Empty(t, p.Conditions)
	require.NotNil(t, p.Notice)
}

func TestProject_RequirementsStep(t *testing.T) {
	p := Project(input(claim.StepRequirements, nil, nil))
	require.NotNil(t, p.Notice)
	assert.Equal(t, "No Conditions Selected", p.Notice.Title)
	assert.True(t, p.CanBack)
	assert.True(t, p.CanContinue)

	cat := catalog.MustLoad()
	tinnitus, _ := cat.Get(2)
	ptsd, _ := cat.Get(1)
	p = Project(input(claim.StepRequirements, []domain.Condition{tinnitus, ptsd}, nil))
	assert.Nil(t, p.Notice)
	require.Len(t, p.Requirements, 2)
	assert.Equal(t, "Tinnitus", p.Requirements[0].Condition.Name)
	assert.Equal(t, catalog.Requirements, p.Requirements[1].Items)
}

func TestProject_UploadStep(t *testing.T) {
	p := Project(input(claim.StepUpload, nil, nil))
	assert.Equal(t, UploadHint, p.UploadHint)
	require.NotNil(t, p.Notice)
	assert.Equal(t, 75, p.Progress)

	p = Project(input(claim.StepUpload, nil, []domain.Document{{Name: "a.pdf"}}))
	assert.Nil(t, p.Notice)
	assert.Equal(t, []domain.Document{{Name: "a.pdf"}}, p.Documents)
}

func TestProject_ReviewStep(t *testing.T) {
	p := Project(input(claim.StepReview, nil, nil))
	require.NotNil(t, p.Notice)
	assert.Equal(t, "Missing Information", p.Notice.Title)
	assert.False(t, p.CanSubmit)
	assert.False(t, p.CanContinue)

	ptsd, _ := catalog.MustLoad().Get(1)
	p = Project(input(claim.StepReview, []domain.Condition{ptsd}, nil))
	assert.Equal(t, StatusReady, p.Status)
	assert.True(t, p.CanSubmit)
	assert.Equal(t, 100, p.Progress)
	assert.False(t, p.CanContinue)
	assert.True(t, p.Steps[2].Done)
}

func TestChat(t *testing.T) {
	v := Chat(domain.ChatState{Open: true, Pending: 1})
	assert.True(t, v.Open)
	assert.True(t, v.Typing)
	assert.NotNil(t, v.Messages)
}

func TestTemplates_RenderEveryStep(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	ptsd, _ := catalog.MustLoad().Get(1)
	for _, s := range claim.Steps {
		in := input(s.Number, []domain.Condition{ptsd}, []domain.Document{{Name: "<b>x.pdf</b>"}})
		in.Chat = domain.ChatState{Open: true, Messages: []domain.ChatMessage{{
			Role: domain.RoleAssistant, Content: "hello", Timestamp: "2024-05-01T10:30:00Z",
		}}}

		var buf bytes.Buffer
		require.NoError(t, tmpl.ExecuteTemplate(&buf, "page", Layout{Page: Project(in), Flash: "done"}), s.Label)

		out := buf.String()
		assert.Contains(t, out, "<h2>"+html.EscapeString(s.Label)+"</h2>")
		assert.Contains(t, out, "VA Claims Assistant")
		assert.NotContains(t, out, "<b>x.pdf</b>")
	}
}

func TestTemplates_ReviewShowsSubmit(t *testing.T) {
	tmpl := MustTemplates()
	ptsd, _ := catalog.MustLoad().Get(1)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "page", Layout{Page: Project(input(claim.StepReview, []domain.Condition{ptsd}, nil))}))
	assert.Contains(t, buf.String(), "Submit Claims")
	assert.Contains(t, buf.String(), StatusReady)
	assert.Contains(t, buf.String(), "Open chat assistant")
}
