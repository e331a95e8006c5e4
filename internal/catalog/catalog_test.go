package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	conditions := c.Conditions()
	require.Len(t, conditions, 3)
	assert.Equal(t, domain.Condition{ID: 1, Name: "PTSD", Description: "Post-traumatic stress disorder"}, conditions[0])
	assert.Equal(t, "Tinnitus", conditions[1].Name)
	assert.Equal(t, "Sleep Apnea", conditions[2].Name)
}

func TestGet(t *testing.T) {
	c := MustLoad()

	got, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Sleep disorder", got.Description)

	_, ok = c.Get(42)
	assert.False(t, ok)
}

func TestConditions_ReturnsCopy(t *testing.T) {
	c := MustLoad()
	list := c.Conditions()
	list[0].Name = "changed"
	assert.Equal(t, "PTSD", c.Conditions()[0].Name)
}

func TestQuery(t *testing.T) {
	c := MustLoad()

	all := c.Query("")
	require.Len(t, all, 2)
	assert.Equal(t, []string{"Anxiety", "Depression", "Insomnia"}, all[0].Symptoms)
	assert.Equal(t, []string{"Current diagnosis", "Evidence of acoustic trauma", "Service connection"}, all[1].RequiredEvidence)

	ptsd := c.Query("ptsd")
	require.Len(t, ptsd, 1)
	assert.Equal(t, "PTSD", ptsd[0].Name)

	ears := c.Query("EARS")
	require.Len(t, ears, 1)
	assert.Equal(t, "Tinnitus", ears[0].Name)

	// the query dataset has no Sleep Apnea entry
	assert.Empty(t, c.Query("sleep"))
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]domain.Condition{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}, nil)
	assert.Error(t, err)
}
