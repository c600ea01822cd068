package main

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE product_variants (id bigint);
ALTER TABLE product_variants ADD COLUMN sku text;

-- +migrate Down
DROP TABLE product_variants;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE product_variants")
		assert.Contains(t, up, "ALTER TABLE product_variants")
		assert.NotContains(t, up, "DROP TABLE")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE product_variants")
		assert.NotContains(t, down, "CREATE TABLE")
	})
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMigrateUp(t *testing.T) {
	t.Run("Applies pending migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0001_init.sql",
			"-- +migrate Up\nCREATE TABLE test (id int);\n-- +migrate Down\nDROP TABLE test;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE test").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, migrateUp(db, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips applied migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0001_init.sql", "-- +migrate Up\nSELECT 1;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, migrateUp(db, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back failed migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0002_bad.sql", "-- +migrate Up\nCREATE TABLE broken;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("0002_bad.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE broken").WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		err = migrateUp(db, []string{file})
		assert.ErrorContains(t, err, "0002_bad.sql")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrateDown(t *testing.T) {
	t.Run("Nothing applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		require.NoError(t, migrateDown(db, nil))
	})

	t.Run("Rolls back latest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		file := writeMigration(t, t.TempDir(), "0001_init.sql",
			"-- +migrate Up\nCREATE TABLE test (id int);\n-- +migrate Down\nDROP TABLE test;")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_init.sql"))
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE test").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0001_init.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, migrateDown(db, []string{file}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing file", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0009_gone.sql"))

		assert.Error(t, migrateDown(db, nil))
	})
}

func TestRun_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = run(db, "sideways", t.TempDir())
	assert.ErrorContains(t, err, "unknown mode")
}

func TestRun_RepositoryMigrationsParse(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		content, err := os.ReadFile(f)
		require.NoError(t, err)
		assert.NotEmpty(t, extractMigrationPart(string(content), "Up"), f)
		assert.NotEmpty(t, extractMigrationPart(string(content), "Down"), f)
	}
}

func TestCatalogSchema_VariantKeys(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_catalog.sql"))
	require.NoError(t, err)
	up := extractMigrationPart(string(content), "Up")

	// Variant ids are numbered per product, so the key must include product_id.
	assert.Regexp(t, regexp.MustCompile(`CONSTRAINT product_variants_pkey PRIMARY KEY \(product_id, id\)`), up)
	assert.Contains(t, up, "CONSTRAINT product_variants_product_id_sku_key UNIQUE (product_id, sku)")
	assert.NotRegexp(t, regexp.MustCompile(`(?m)^\s*id\s+BIGINT PRIMARY KEY`), up)
}
