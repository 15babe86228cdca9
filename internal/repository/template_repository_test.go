package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/template-settings-api/internal/models"
	"gorm.io/gorm"
)

func TestTemplateRepository_CreateRoundTripsSettings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	owner := createTestUser(t, db, "alice")
	tenant := createTestTenant(t, db, owner, "acme")

	template := &models.TemplateSetting{
		TenantID:     tenant.ID,
		TemplateName: "invoice",
		Settings: models.JSONMap{
			"color":  "blue",
			"layout": map[string]interface{}{"columns": json.Number("2")},
			"tags":   []interface{}{"a", "b"},
			"id":     json.Number("9007199254740993"),
		},
		CreatedByID: &owner.ID,
	}
	require.NoError(t, repo.Create(template))

	found, err := repo.FindVisible(template.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, template.Settings, found.Settings)
	require.NotNil(t, found.Tenant)
	assert.Equal(t, "acme", found.Tenant.Name)
	require.NotNil(t, found.CreatedBy)
	assert.Equal(t, owner.ID, found.CreatedBy.ID)
}

func TestTemplateRepository_NilSettingsStoredAsEmptyObject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	owner := createTestUser(t, db, "alice")
	tenant := createTestTenant(t, db, owner, "acme")

	template := &models.TemplateSetting{TenantID: tenant.ID, TemplateName: "empty"}
	require.NoError(t, repo.Create(template))

	found, err := repo.FindVisible(template.ID, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.Settings)
	assert.Empty(t, found.Settings)
}

func TestTemplateRepository_Visibility(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	acme := createTestTenant(t, db, alice, "acme")
	initech := createTestTenant(t, db, bob, "initech")

	mine := &models.TemplateSetting{TenantID: acme.ID, TemplateName: "mine", CreatedByID: &alice.ID}
	// created by bob inside a tenant alice owns
	shared := &models.TemplateSetting{TenantID: acme.ID, TemplateName: "shared", CreatedByID: &bob.ID}
	theirs := &models.TemplateSetting{TenantID: initech.ID, TemplateName: "theirs", CreatedByID: &bob.ID}
	for _, tmpl := range []*models.TemplateSetting{mine, shared, theirs} {
		require.NoError(t, repo.Create(tmpl))
	}

	templates, total, err := repo.List(TemplateFilter{VisibleToUserID: alice.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, templates, 2)

	templates, _, err = repo.List(TemplateFilter{VisibleToUserID: alice.ID, CreatedByID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "mine", templates[0].TemplateName)

	templates, _, err = repo.List(TemplateFilter{VisibleToUserID: bob.ID, TenantID: &acme.ID})
	require.NoError(t, err)
	assert.Empty(t, templates)

	_, err = repo.FindVisible(theirs.ID, alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTemplateRepository_UpdateMovesTenant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	owner := createTestUser(t, db, "alice")
	acme := createTestTenant(t, db, owner, "acme")
	globex := createTestTenant(t, db, owner, "globex")

	template := &models.TemplateSetting{TenantID: acme.ID, TemplateName: "invoice", CreatedByID: &owner.ID}
	require.NoError(t, repo.Create(template))

	template.TenantID = globex.ID
	template.Settings = models.JSONMap{"k": json.Number("1")}
	require.NoError(t, repo.Update(template))

	found, err := repo.FindVisible(template.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, globex.ID, found.TenantID)
	assert.Equal(t, models.JSONMap{"k": json.Number("1")}, found.Settings)

	require.NoError(t, repo.Delete(template.ID))
	_, err = repo.FindVisible(template.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
