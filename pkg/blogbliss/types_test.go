package blogbliss_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RabiyaNoorAhmed/BlogBliss-backend/pkg/blogbliss"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected blogbliss.Category
	}{
		{"known category", "Technology", blogbliss.CategoryTechnology},
		{"category with ampersand", "Science & Nature", blogbliss.CategoryScienceNature},
		{"unknown category", "Gardening", blogbliss.CategoryUncategorized},
		{"empty string", "", blogbliss.CategoryUncategorized},
		{"case mismatch is not a match", "technology", blogbliss.CategoryUncategorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, blogbliss.NormalizeCategory(tt.input))
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range blogbliss.Categories {
		assert.True(t, c.Valid(), "category %q should be valid", c)
	}
	assert.False(t, blogbliss.Category("Gardening").Valid())
	assert.False(t, blogbliss.Category("").Valid())
}

func TestUserJSONHidesPassword(t *testing.T) {
	user := blogbliss.User{Name: "Ann", Email: "ann@x.com", Password: "bcrypt-hash"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.NotContains(t, string(raw), "bcrypt-hash")
}
