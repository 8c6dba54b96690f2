package prompts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-optimizer/internal/types"
)

func TestGet_EmbeddedDefaultsExist(t *testing.T) {
	for _, name := range []string{NameResumeAnalysis, NameJobAnalysis, NameMatchingAnalysis} {
		tmpl, err := Get("scoring.json", name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, tmpl, name)
	}

	tmpl, err := Get("optimization.json", NameResumeOptimization)
	require.NoError(t, err)
	assert.Contains(t, tmpl, "user_information")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("scoring.json", "no_such_prompt")
	assert.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	result := Format("Hello {{.Name}}, score: {{.Score}}", map[string]string{
		"Name":  "Jane",
		"Score": "85",
	})
	assert.Equal(t, "Hello Jane, score: 85", result)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestStaticSource_ResolvesAllPipelineNames(t *testing.T) {
	src := StaticSource{}
	for _, name := range []string{NameResumeAnalysis, NameJobAnalysis, NameMatchingAnalysis, NameResumeOptimization} {
		tmpl, ok := src.GetTemplate(context.Background(), name)
		assert.True(t, ok, name)
		assert.NotEmpty(t, tmpl, name)
	}
}

func TestStaticSource_UnknownName(t *testing.T) {
	_, ok := StaticSource{}.GetTemplate(context.Background(), "unknown")
	assert.False(t, ok)
}

type fakeStore struct {
	specs map[string]*types.PromptSpec
	err   error
}

func (f *fakeStore) GetPromptByName(_ context.Context, name string) (*types.PromptSpec, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.specs[name], nil
}

func TestPersistedSource_ReturnsStoredTemplate(t *testing.T) {
	store := &fakeStore{specs: map[string]*types.PromptSpec{
		NameResumeOptimization: {Name: NameResumeOptimization, Template: "override", IsActive: true},
	}}

	tmpl, ok := NewPersistedSource(store).GetTemplate(context.Background(), NameResumeOptimization)
	require.True(t, ok)
	assert.Equal(t, "override", tmpl)
}

func TestPersistedSource_InactiveTemplateSkipped(t *testing.T) {
	store := &fakeStore{specs: map[string]*types.PromptSpec{
		"x": {Name: "x", Template: "hidden", IsActive: false},
	}}

	_, ok := NewPersistedSource(store).GetTemplate(context.Background(), "x")
	assert.False(t, ok)
}

func TestPersistedSource_StoreErrorAbsorbed(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	_, ok := NewPersistedSource(store).GetTemplate(context.Background(), NameResumeOptimization)
	assert.False(t, ok)
}

func TestFallbackSource_PersistedWins(t *testing.T) {
	store := &fakeStore{specs: map[string]*types.PromptSpec{
		NameResumeOptimization: {Name: NameResumeOptimization, Template: "override", IsActive: true},
	}}

	tmpl, ok := WithStore(store).GetTemplate(context.Background(), NameResumeOptimization)
	require.True(t, ok)
	assert.Equal(t, "override", tmpl)
}

func TestFallbackSource_FallsBackToStatic(t *testing.T) {
	tmpl, ok := WithStore(&fakeStore{}).GetTemplate(context.Background(), NameResumeOptimization)
	require.True(t, ok)
	assert.Contains(t, tmpl, "user_information")
}

func TestPlaceholders_AllDelimiterStyles(t *testing.T) {
	names := Placeholders("a {{.JobDescription}} b {{resume}} c {missing_skills} d")
	assert.ElementsMatch(t, []string{"JobDescription", "resume", "missing_skills"}, names)
}

func TestValidateSpec_DefaultsAreConsistent(t *testing.T) {
	for _, spec := range DefaultSpecs() {
		s := spec
		assert.NoError(t, ValidateSpec(&s), spec.Name)
	}
}

func TestValidateSpec_UndeclaredPlaceholder(t *testing.T) {
	spec := &types.PromptSpec{
		Name:      "bad",
		Template:  "uses {{.Undeclared}}",
		Variables: []string{"Other"},
	}
	assert.Error(t, ValidateSpec(spec))
}
