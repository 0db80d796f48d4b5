package pgdb

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Колонки, которые запросы репозиториев читают или пишут, по таблицам.
// Тест сверяет их с DDL миграций: расхождение означает, что на свежей базе
// первый же запрос упадет с "column does not exist".
var queriedColumns = map[string][]string{
	"categories": {"id", "name", "created_at", "updated_at"},
	"products": {
		"id", "name", "price", "discount_price", "weight", "image",
		"category_id", "created_at", "updated_at",
	},
	"admins": {"id", "username", "password_hash", "created_at"},
	"outbox_events": {
		"id", "event_id", "event_type", "entity_id", "payload",
		"status", "created_at", "processing_started_at", "processed_at",
	},
}

func TestMigrationsDeclareQueriedColumns(t *testing.T) {
	tables := loadMigrationTables(t)

	for table, columns := range queriedColumns {
		body, ok := tables[table]
		require.True(t, ok, "таблица %s не создается миграциями", table)

		for _, column := range columns {
			// Объявление колонки — начало строки внутри CREATE TABLE
			pattern := regexp.MustCompile(`(?m)^\s*` + column + `\s`)
			require.True(t, pattern.MatchString(body),
				"таблица %s: колонка %s используется в запросах, но не объявлена в DDL", table, column)
		}
	}
}

// loadMigrationTables собирает тела CREATE TABLE из всех up-миграций.
func loadMigrationTables(t *testing.T) map[string]string {
	t.Helper()

	files, err := filepath.Glob(filepath.Join("..", "..", "..", "db", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "up-миграции не найдены")

	createTable := regexp.MustCompile(`(?s)CREATE TABLE (\w+) \((.*?)\n\);`)

	tables := make(map[string]string)
	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)

		for _, m := range createTable.FindAllStringSubmatch(string(data), -1) {
			tables[strings.ToLower(m[1])] = m[2]
		}
	}

	return tables
}
