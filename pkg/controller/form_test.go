package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stembase/mading/pkg/api"
)

func TestForm_Validate(t *testing.T) {
	form := NewForm([]string{"title", "content"}, "Failed to save.", nil)
	form.OpenCreate()
	form.Set("title", "Hello")

	err := form.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content")

	form.Set("content", "Body")
	assert.NoError(t, form.Validate())
}

func TestForm_SubmitSuccess(t *testing.T) {
	refreshed := false
	var submitted *Form
	form := NewForm([]string{"name"}, "Failed to save.",
		func(ctx context.Context, f *Form) error {
			submitted = f
			return nil
		},
		WithOnSaved(func() { refreshed = true }),
	)

	form.OpenCreate()
	form.Set("name", "Tech")
	require.NoError(t, form.Submit(context.Background()))

	assert.Same(t, form, submitted)
	assert.True(t, refreshed, "owning list refresh must run on success")
	assert.False(t, form.Open(), "modal closes on success")
	assert.Empty(t, form.Value("name"), "form resets on success")
}

func TestForm_SubmitFailure(t *testing.T) {
	form := NewForm([]string{"name"}, "Failed to save.",
		func(ctx context.Context, f *Form) error {
			return &api.APIError{Message: "Name already taken"}
		},
	)

	form.OpenCreate()
	form.Set("name", "Tech")
	err := form.Submit(context.Background())

	require.Error(t, err)
	assert.True(t, form.Open(), "modal stays open on failure")
	assert.Equal(t, "Name already taken", form.Error())
	assert.Equal(t, "Tech", form.Value("name"), "values survive a failed submit")
}

func TestForm_EditGuard(t *testing.T) {
	form := NewForm([]string{"title"}, "Failed to save.", nil,
		WithEditGuard(func() error {
			return errors.New("Categories not loaded yet. Please try again.")
		}),
	)

	err := form.OpenEdit(4, map[string]string{"title": "Old"})
	require.Error(t, err)
	assert.False(t, form.Open(), "edit must be rejected while dependencies are missing")
	assert.Equal(t, "Categories not loaded yet. Please try again.", form.Error())
}

func TestForm_OpenEditPopulates(t *testing.T) {
	form := NewForm([]string{"title"}, "Failed to save.", nil)
	require.NoError(t, form.OpenEdit(4, map[string]string{"title": "Old", "category_id": "2"}))

	assert.Equal(t, FormEdit, form.Mode())
	assert.Equal(t, 4, form.EntityID())
	assert.Equal(t, "Old", form.Value("title"))
	assert.Equal(t, "2", form.Value("category_id"))
}

func TestForm_IdempotentEdit(t *testing.T) {
	// Submitting an edit with unchanged values and refetching yields a
	// collection with the same id set as before.
	store := map[int]string{1: "News", 2: "Tech"}
	ids := func() map[int]bool {
		set := map[int]bool{}
		for id := range store {
			set[id] = true
		}
		return set
	}
	before := ids()

	list := NewList(func(ctx context.Context, q Query) ([]int, error) {
		var out []int
		for id := range store {
			out = append(out, id)
		}
		return out, nil
	}, "fail")

	form := NewForm([]string{"name"}, "Failed to save.",
		func(ctx context.Context, f *Form) error {
			store[f.EntityID()] = f.Value("name")
			return nil
		},
		WithOnSaved(func() { list.Refresh(context.Background()) }),
	)

	require.NoError(t, form.OpenEdit(2, map[string]string{"name": store[2]}))
	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, before, ids())
	assert.Equal(t, len(before), list.Len())
}
