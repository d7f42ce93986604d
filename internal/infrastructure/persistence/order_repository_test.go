package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/opticore/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_FindExistingKeys(t *testing.T) {
	t.Run("returns the stored number and kind pairs", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		mock.ExpectQuery(`SELECT order_number, movement_kind FROM "orders" WHERE order_number IN \(\$1,\$2\)`).
			WithArgs("PED-100", "PED-200").
			WillReturnRows(sqlmock.NewRows([]string{"order_number", "movement_kind"}).
				AddRow("PED-100", "SHIPMENT").
				AddRow("PED-100", "SALE"))

		keys, err := repo.FindExistingKeys(context.Background(), []string{"PED-100", "PED-200"})

		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, ledger.OrderKey{OrderNumber: "PED-100", MovementKind: ledger.EntryKindShipment}, keys[0])
		assert.Equal(t, ledger.OrderKey{OrderNumber: "PED-100", MovementKind: ledger.EntryKindSale}, keys[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the query for an empty number list", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		keys, err := repo.FindExistingKeys(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, keys)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_ExistsByKey(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number = \$1 AND movement_kind = \$2`).
		WithArgs("PED-100", "SALE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByKey(context.Background(), ledger.OrderKey{
		OrderNumber:  "PED-100",
		MovementKind: ledger.EntryKindSale,
	})

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_ListLines(t *testing.T) {
	t.Run("joins items to their order's seller and kind", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		mock.ExpectQuery(`SELECT orders\.seller_code, order_items\.auxiliary_code, orders\.movement_kind, order_items\.quantity FROM "order_items" JOIN orders ON orders\.id = order_items\.order_id WHERE orders\.seller_code = \$1`).
			WithArgs("11").
			WillReturnRows(sqlmock.NewRows([]string{"seller_code", "auxiliary_code", "movement_kind", "quantity"}).
				AddRow("11", "OB1215 Q01", "SHIPMENT", decimal.NewFromInt(10)).
				AddRow("11", "OB1215 Q01", "SALE", decimal.NewFromInt(3)))

		lines, err := repo.ListLines(context.Background(), "11", nil)

		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, ledger.EntryKindShipment, lines[0].MovementKind)
		assert.True(t, lines[0].SignedQuantity().Equal(decimal.NewFromInt(10)))
		assert.True(t, lines[1].SignedQuantity().Equal(decimal.NewFromInt(-3)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bounds the join by the issue date cutoff", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		cutoff := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT .* FROM "order_items" JOIN orders ON orders\.id = order_items\.order_id WHERE orders\.seller_code = \$1 AND orders\.issue_date <= \$2`).
			WithArgs("11", cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"seller_code", "auxiliary_code", "movement_kind", "quantity"}))

		lines, err := repo.ListLines(context.Background(), "11", &cutoff)

		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
