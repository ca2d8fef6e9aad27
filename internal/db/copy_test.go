package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "records", []string{"vendor", "model"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"records"}, []string{"vendor", "model"}).WillReturnResult(3)

	rows := [][]any{{"CISCO", "C9300"}, {"DELL", "R740"}, {"HPE", "DL380"}}
	n, err := CopyFrom(context.Background(), mock, "records", []string{"vendor", "model"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"records"}, []string{"vendor", "model"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{"CISCO", "C9300"}}
	_, err = CopyFrom(context.Background(), mock, "records", []string{"vendor", "model"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO records")
	assert.NoError(t, mock.ExpectationsWereMet())
}
