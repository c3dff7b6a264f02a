package usecase

import (
	"strconv"

	"eduplatform/internal/domain"
)

// ResolvePosition приводит идентификатор контента к каноничной позиции
// внутри модуля. Фронтенд может прислать номер позиции, стабильный ID
// или точное название — все варианты сходятся к одной позиции, чтобы
// множество пройденного не дробилось на эквивалентные записи.
func ResolvePosition(contents []domain.ContentItem, identifier string) (int, bool) {
	// 1. Числовой индекс
	if n, err := strconv.Atoi(identifier); err == nil && n >= 0 && n < len(contents) {
		return n, true
	}

	// 2. Стабильный ID
	for i, c := range contents {
		if c.StableID != "" && c.StableID == identifier {
			return i, true
		}
	}

	// 3. Точное название
	for i, c := range contents {
		if c.Title != "" && c.Title == identifier {
			return i, true
		}
	}

	return 0, false
}

// NormalizePosition — мягкая обёртка: при неудаче возвращает
// идентификатор как есть и никогда не падает.
func NormalizePosition(contents []domain.ContentItem, identifier string) string {
	if pos, ok := ResolvePosition(contents, identifier); ok {
		return strconv.Itoa(pos)
	}
	return identifier
}
