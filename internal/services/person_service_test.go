package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/types"
)

func TestCreatePersonWithTags(t *testing.T) {
	db := setupTestDB(t)
	tagA := seedTag(t, db, "user-1", "investor")
	tagB := seedTag(t, db, "user-1", "friend")

	person, err := services.CreatePerson(db, "user-1", services.CreatePersonInput{
		Name:   "Ada",
		TagIDs: []string{tagA.ID, tagB.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", person.Name)
	assert.Equal(t, "user-1", person.UserID)
	assert.False(t, person.IsFavorite)
	assert.Len(t, person.Tags, 2)

	// Collections the person has nothing in must come back empty, not null.
	assert.NotNil(t, person.Roles)
	assert.NotNil(t, person.Notes)
	assert.NotNil(t, person.Asks)
	assert.NotNil(t, person.Favours)
}

func TestCreatePersonRejectsForeignTags(t *testing.T) {
	db := setupTestDB(t)
	foreign := seedTag(t, db, "user-2", "their-tag")

	_, err := services.CreatePerson(db, "user-1", services.CreatePersonInput{
		Name:   "Ada",
		TagIDs: []string{foreign.ID},
	})
	require.Error(t, err)
	assert.Equal(t, 400, types.AsAppError(err).Status)

	// The rejected create must not leave a person row behind.
	var count int64
	db.Model(&models.Person{}).Count(&count)
	assert.Zero(t, count)
}

func TestListPeopleScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	seedPerson(t, db, "user-1", "Ada")
	seedPerson(t, db, "user-2", "Bob")

	people, err := services.ListPeople(db, "user-1", services.PeopleFilters{})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Ada", people[0].Name)
}

func TestListPeopleSearch(t *testing.T) {
	db := setupTestDB(t)
	seedPerson(t, db, "user-1", "Ada Lovelace")
	engineer := seedPerson(t, db, "user-1", "Grace Hopper")
	seedPerson(t, db, "user-1", "Alan Turing")

	_, err := services.CreateRole(db, "user-1", engineer.ID, "Rear Admiral", strPtr("US Navy"))
	require.NoError(t, err)

	// Case-insensitive match on name.
	people, err := services.ListPeople(db, "user-1", services.PeopleFilters{Search: "lovelace"})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Ada Lovelace", people[0].Name)

	// Match through a role's company.
	people, err = services.ListPeople(db, "user-1", services.PeopleFilters{Search: "navy"})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Grace Hopper", people[0].Name)

	people, err = services.ListPeople(db, "user-1", services.PeopleFilters{Search: "nomatch"})
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestListPeopleTagFilter(t *testing.T) {
	db := setupTestDB(t)
	tag := seedTag(t, db, "user-1", "mentor")
	other := seedTag(t, db, "user-1", "peer")

	tagged, err := services.CreatePerson(db, "user-1", services.CreatePersonInput{
		Name:   "Ada",
		TagIDs: []string{tag.ID},
	})
	require.NoError(t, err)
	_, err = services.CreatePerson(db, "user-1", services.CreatePersonInput{Name: "Bob"})
	require.NoError(t, err)

	people, err := services.ListPeople(db, "user-1", services.PeopleFilters{TagIDs: []string{tag.ID, other.ID}})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, tagged.ID, people[0].ID)
}

func TestListPeopleOrderAndPaging(t *testing.T) {
	db := setupTestDB(t)
	seedPerson(t, db, "user-1", "Carol")
	seedPerson(t, db, "user-1", "Alice")
	favorite := models.Person{UserID: "user-1", Name: "Zed", IsFavorite: true}
	require.NoError(t, db.Create(&favorite).Error)

	people, err := services.ListPeople(db, "user-1", services.PeopleFilters{})
	require.NoError(t, err)
	require.Len(t, people, 3)
	// Favorites lead regardless of name, then name ascending.
	assert.Equal(t, "Zed", people[0].Name)
	assert.Equal(t, "Alice", people[1].Name)
	assert.Equal(t, "Carol", people[2].Name)

	people, err = services.ListPeople(db, "user-1", services.PeopleFilters{Limit: intPtr(1), Offset: intPtr(1)})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Alice", people[0].Name)
}

func TestGetPersonOwnership(t *testing.T) {
	db := setupTestDB(t)
	person := seedPerson(t, db, "user-1", "Ada")

	got, err := services.GetPerson(db, "user-1", person.ID)
	require.NoError(t, err)
	assert.Equal(t, person.ID, got.ID)

	// Another user's lookup is indistinguishable from a missing record.
	_, err = services.GetPerson(db, "user-2", person.ID)
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)
}

func TestUpdatePersonPartialFields(t *testing.T) {
	db := setupTestDB(t)
	person, err := services.CreatePerson(db, "user-1", services.CreatePersonInput{
		Name:        "Ada",
		Description: strPtr("mathematician"),
	})
	require.NoError(t, err)

	updated, err := services.UpdatePerson(db, "user-1", person.ID, services.UpdatePersonInput{
		IsFavorite: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "Ada", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "mathematician", *updated.Description)
}

func TestUpdatePersonTagSemantics(t *testing.T) {
	db := setupTestDB(t)
	tagA := seedTag(t, db, "user-1", "a")
	tagB := seedTag(t, db, "user-1", "b")

	person, err := services.CreatePerson(db, "user-1", services.CreatePersonInput{
		Name:   "Ada",
		TagIDs: []string{tagA.ID},
	})
	require.NoError(t, err)

	// Omitted tagIds leave the tag set alone.
	updated, err := services.UpdatePerson(db, "user-1", person.ID, services.UpdatePersonInput{
		Name: strPtr("Ada L"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, tagA.ID, updated.Tags[0].ID)

	// A provided set replaces, never merges.
	updated, err = services.UpdatePerson(db, "user-1", person.ID, services.UpdatePersonInput{
		TagIDs: &[]string{tagB.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, tagB.ID, updated.Tags[0].ID)

	// An explicit empty set clears every association.
	updated, err = services.UpdatePerson(db, "user-1", person.ID, services.UpdatePersonInput{
		TagIDs: &[]string{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestSoftDeletePersonHidesFromReads(t *testing.T) {
	db := setupTestDB(t)
	person := seedPerson(t, db, "user-1", "Ada")

	deleted, err := services.SoftDeletePerson(db, "user-1", person.ID)
	require.NoError(t, err)
	assert.Equal(t, person.ID, deleted.ID)

	_, err = services.GetPerson(db, "user-1", person.ID)
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)

	people, err := services.ListPeople(db, "user-1", services.PeopleFilters{})
	require.NoError(t, err)
	assert.Empty(t, people)

	// A second delete reads through the soft-delete scope and misses.
	_, err = services.SoftDeletePerson(db, "user-1", person.ID)
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)

	// The row is still physically present.
	var count int64
	db.Unscoped().Model(&models.Person{}).Where("id = ?", person.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateRoleAndNoteRequireOwnership(t *testing.T) {
	db := setupTestDB(t)
	person := seedPerson(t, db, "user-1", "Ada")

	role, err := services.CreateRole(db, "user-1", person.ID, "Engineer", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, role.ID)
	assert.Equal(t, person.ID, role.PersonID)

	note, err := services.CreateNote(db, "user-1", person.ID, "met at conference")
	require.NoError(t, err)
	assert.Equal(t, "met at conference", note.Content)

	_, err = services.CreateRole(db, "user-2", person.ID, "Engineer", nil)
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)

	_, err = services.CreateNote(db, "user-2", person.ID, "nope")
	require.Error(t, err)
	assert.Equal(t, 404, types.AsAppError(err).Status)
}
