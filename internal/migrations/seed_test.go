package migrations

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_types")).
		WithArgs("Health").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_types")).
		WithArgs("Education").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tokens")).
		WithArgs("USD Coin", "USDC", "0.0.456858", 6).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	inserted, err := SeedCatalog(context.Background(), db, Catalog{
		CampaignTypes: []string{"Health", "Education"},
		Tokens:        []SeedToken{{Name: "USD Coin", Symbol: "USDC", Address: "0.0.456858", Decimal: 6}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedCatalogRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_types")).
		WithArgs("Health").
		WillReturnError(errors.New("relation \"campaign_types\" does not exist"))
	mock.ExpectRollback()

	_, err = SeedCatalog(context.Background(), db, Catalog{CampaignTypes: []string{"Health"}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
