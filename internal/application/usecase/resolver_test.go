package usecase

import (
	"testing"

	"eduplatform/internal/domain"

	"github.com/stretchr/testify/assert"
)

func resolverContents() []domain.ContentItem {
	return []domain.ContentItem{
		{Position: 0, StableID: "intro-video", Title: "Introduction"},
		{Position: 1, StableID: "lesson-1", Title: "First Lesson"},
		{Position: 2, StableID: "5", Title: "Second Lesson"},
		{Position: 3, Title: "Final Quiz"},
	}
}

func TestResolvePosition(t *testing.T) {
	contents := resolverContents()

	tests := []struct {
		name       string
		identifier string
		wantPos    int
		wantOK     bool
	}{
		{"numeric index", "1", 1, true},
		{"numeric index zero", "0", 0, true},
		{"stable id", "lesson-1", 1, true},
		{"title", "Final Quiz", 3, true},
		{"out of range falls back to stable id", "5", 2, true},
		{"negative number not an index", "-1", 0, false},
		{"unknown identifier", "nope", 0, false},
		{"empty identifier", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := ResolvePosition(contents, tt.identifier)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPos, pos)
			}
		})
	}
}

func TestNormalizePosition(t *testing.T) {
	contents := resolverContents()

	// Разные представления одного элемента сходятся к одной позиции
	assert.Equal(t, "1", NormalizePosition(contents, "1"))
	assert.Equal(t, "1", NormalizePosition(contents, "lesson-1"))
	assert.Equal(t, "1", NormalizePosition(contents, "First Lesson"))

	// Нераспознанный идентификатор возвращается без изменений
	assert.Equal(t, "garbage", NormalizePosition(contents, "garbage"))
	assert.Equal(t, "99", NormalizePosition(nil, "99"))
}
