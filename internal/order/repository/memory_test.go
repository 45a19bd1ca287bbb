package repository

import (
	"context"
	"testing"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	sheet, err := repo.FindSheet(ctx, "ai base")
	require.NoError(t, err)
	assert.Nil(t, sheet)

	assert.Error(t, repo.AppendRows(ctx, "ai base", []model.Row{{"x"}}), "appending to a missing sheet fails")

	require.NoError(t, repo.CreateSheet(ctx, &model.Sheet{Name: "ai base", Headers: []string{"a", "b"}}))
	require.NoError(t, repo.CreateSheet(ctx, &model.Sheet{Name: "ai base", Headers: []string{"other"}}), "second create is a no-op")

	sheet, err = repo.FindSheet(ctx, "nope", "ai base")
	require.NoError(t, err)
	require.NotNil(t, sheet)
	assert.Equal(t, []string{"a", "b"}, sheet.Headers)

	row := model.Row{"1", 2}
	require.NoError(t, repo.AppendRows(ctx, "ai base", []model.Row{row}))
	row[0] = "mutated"

	rows := repo.Rows("ai base")
	require.Len(t, rows, 1)
	assert.Equal(t, model.Row{"1", 2}, rows[0])
	assert.Nil(t, repo.Rows("nope"))
}
