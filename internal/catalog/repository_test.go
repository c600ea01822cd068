package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListAttributes(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "required", "active", "value"}).
			AddRow(1, "Size", true, true, "S").
			AddRow(1, "Size", true, true, "M").
			AddRow(2, "Material", false, true, nil).
			AddRow(3, "Fit", false, false, "Slim")

		mock.ExpectQuery(`(?s)SELECT .* FROM attributes a\s+LEFT JOIN attribute_values v`).
			WillReturnRows(rows)

		dims, err := repo.ListAttributes(ctx)
		require.NoError(t, err)
		require.Len(t, dims, 3)

		assert.Equal(t, "1", dims[0].ID)
		assert.Equal(t, "Size", dims[0].Name)
		assert.True(t, dims[0].Required)
		assert.Equal(t, []string{"S", "M"}, dims[0].Values)

		assert.Equal(t, "Material", dims[1].Name)
		assert.Empty(t, dims[1].Values)

		assert.False(t, dims[2].Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnError(errors.New("db error"))

		_, err = repo.ListAttributes(ctx)
		assert.ErrorIs(t, err, ErrFailedListAttributes)
	})
}

func TestRepository_ListColors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "hex", "active"}).
			AddRow(1, "Red", "#ff0000", true).
			AddRow(2, "Green", "#00ff00", false)

		mock.ExpectQuery(`(?s)SELECT id, name, hex, active\s+FROM colors`).
			WillReturnRows(rows)

		colors, err := repo.ListColors(context.Background())
		require.NoError(t, err)
		require.Len(t, colors, 2)
		assert.Equal(t, "1", colors[0].ID)
		assert.Equal(t, "Red", colors[0].Name)
		assert.False(t, colors[1].Active)
	})

	t.Run("ScanError", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Red")
		mock.ExpectQuery(`(?s)SELECT .* FROM colors`).WillReturnRows(rows)

		_, err := repo.ListColors(context.Background())
		assert.ErrorIs(t, err, ErrFailedListColors)
	})
}

func TestRepository_GetBrand(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name FROM brands WHERE id = \$1`).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "Acme"))

		b, err := repo.GetBrand(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, &Brand{ID: 4, Name: "Acme"}, b)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name FROM brands`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.GetBrand(context.Background(), 9)
		assert.ErrorIs(t, err, ErrBrandNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name FROM brands`).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.GetBrand(context.Background(), 1)
		assert.ErrorIs(t, err, ErrFailedGetBrand)
	})
}
