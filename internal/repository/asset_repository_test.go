package repository

import (
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/mediadb-backend/internal/models"
)

func TestBuildAssetListQuery_UserOnly(t *testing.T) {
	query, args := buildAssetListQuery(models.AssetFilter{UserID: "u1"})

	assert.Contains(t, query, "a.user_id = $1 AND a.is_archived = FALSE")
	assert.Contains(t, query, `c.name AS "category.name"`)
	assert.NotContains(t, query, "ILIKE")
	assert.True(t, strings.HasSuffix(query, "ORDER BY a.created_at DESC LIMIT $2"))
	assert.Equal(t, []interface{}{"u1", models.MaxAssetListSize}, args)
}

func TestBuildAssetListQuery_AllFilters(t *testing.T) {
	query, args := buildAssetListQuery(models.AssetFilter{
		UserID:     "u1",
		CategoryID: "c1",
		Query:      " 50%_off ",
		Limit:      10,
	})

	assert.Contains(t, query, "a.category_id = $2")
	assert.Contains(t, query, "(a.title ILIKE $3 OR a.user_description ILIKE $3 OR a.ai_description ILIKE $3)")
	assert.Contains(t, query, "LIMIT $4")
	assert.Equal(t, []interface{}{"u1", "c1", `%50\%\_off%`, 10}, args)
}

func TestBuildAssetListQuery_ClampsLimit(t *testing.T) {
	_, args := buildAssetListQuery(models.AssetFilter{UserID: "u1", Limit: 5000})
	assert.Equal(t, models.MaxAssetListSize, args[len(args)-1])
}

func TestBuildAssetUpdateQuery_OnlyProvidedFields(t *testing.T) {
	fav := true
	query, args := buildAssetUpdateQuery("a1", models.AssetPatch{IsFavorite: &fav})

	assert.Equal(t, "UPDATE assets SET is_favorite = $1, updated_at = NOW() WHERE id = $2 RETURNING *", query)
	assert.Equal(t, []interface{}{true, "a1"}, args)
}

func TestBuildAssetUpdateQuery_ManyFields(t *testing.T) {
	title := "Dog"
	tags := []string{"pet", "dog"}
	size := int64(42)
	query, args := buildAssetUpdateQuery("a1", models.AssetPatch{
		Title:    &title,
		Tags:     &tags,
		FileSize: &size,
	})

	assert.Equal(t, "UPDATE assets SET title = $1, tags = $2, file_size = $3, updated_at = NOW() WHERE id = $4 RETURNING *", query)
	assert.Equal(t, []interface{}{"Dog", pq.StringArray{"pet", "dog"}, int64(42), "a1"}, args)
}

func TestBuildAssetUpdateQuery_EmptyTagsStayNonNil(t *testing.T) {
	var empty []string
	_, args := buildAssetUpdateQuery("a1", models.AssetPatch{Tags: &empty})
	assert.Equal(t, pq.StringArray{}, args[0])
}
