package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/types"
)

func TestListTagsOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	seedTag(t, db, "user-1", "zulu")
	seedTag(t, db, "user-1", "alpha")
	seedTag(t, db, "user-2", "other")

	tags, err := services.ListTags(db, "user-1")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "alpha", tags[0].Name)
	assert.Equal(t, "zulu", tags[1].Name)
}

func TestCreateTagDuplicateName(t *testing.T) {
	db := setupTestDB(t)

	tag, err := services.CreateTag(db, "user-1", services.CreateTagInput{Name: "mentor"})
	require.NoError(t, err)
	assert.NotEmpty(t, tag.ID)

	_, err = services.CreateTag(db, "user-1", services.CreateTagInput{Name: "mentor"})
	require.Error(t, err)
	appErr := types.AsAppError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, "Tag name already exists.", appErr.Message)

	// The name space is per user, not global.
	_, err = services.CreateTag(db, "user-2", services.CreateTagInput{Name: "mentor"})
	require.NoError(t, err)
}

func TestUpdateTag(t *testing.T) {
	db := setupTestDB(t)
	tag := seedTag(t, db, "user-1", "mentor")
	seedTag(t, db, "user-1", "peer")

	// Color-only edits skip the uniqueness check entirely.
	updated, err := services.UpdateTag(db, "user-1", tag.ID, services.UpdateTagInput{
		Color: strPtr("#ff0000"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Color)
	assert.Equal(t, "#ff0000", *updated.Color)

	// Re-submitting the current name is not a conflict.
	_, err = services.UpdateTag(db, "user-1", tag.ID, services.UpdateTagInput{
		Name: strPtr("mentor"),
	})
	require.NoError(t, err)

	// Renaming onto another of the user's tags is.
	_, err = services.UpdateTag(db, "user-1", tag.ID, services.UpdateTagInput{
		Name: strPtr("peer"),
	})
	require.Error(t, err)
	assert.Equal(t, 409, types.AsAppError(err).Status)

	updated, err = services.UpdateTag(db, "user-1", tag.ID, services.UpdateTagInput{
		Name: strPtr("advisor"),
	})
	require.NoError(t, err)
	assert.Equal(t, "advisor", updated.Name)
}

func TestUpdateTagOwnership(t *testing.T) {
	db := setupTestDB(t)
	tag := seedTag(t, db, "user-1", "mentor")

	_, err := services.UpdateTag(db, "user-2", tag.ID, services.UpdateTagInput{
		Name: strPtr("stolen"),
	})
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)
}

func TestDeleteTag(t *testing.T) {
	db := setupTestDB(t)
	tag := seedTag(t, db, "user-1", "mentor")

	deleted, err := services.DeleteTag(db, "user-1", tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, deleted.ID)

	_, err = services.DeleteTag(db, "user-1", tag.ID)
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)

	tags, err := services.ListTags(db, "user-1")
	require.NoError(t, err)
	assert.Empty(t, tags)
}
