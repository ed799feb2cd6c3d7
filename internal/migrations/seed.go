package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedToken is a token row to seed
type SeedToken struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
	Decimal int    `json:"decimal"`
}

// Catalog is the reference data campaigns point at
type Catalog struct {
	CampaignTypes []string    `json:"campaign_types"`
	Tokens        []SeedToken `json:"tokens"`
}

const (
	insertCampaignType = `INSERT INTO campaign_types (name)
SELECT $1::varchar WHERE NOT EXISTS (SELECT 1 FROM campaign_types WHERE name = $1)`

	insertToken = `INSERT INTO tokens (name, symbol, address, decimal)
SELECT $1::varchar, $2::varchar, $3::varchar, $4::integer
WHERE NOT EXISTS (SELECT 1 FROM tokens WHERE address = $3)`
)

// SeedCatalog inserts the campaign types and tokens that are not present yet,
// matching types by name and tokens by address. It returns the rows inserted.
func SeedCatalog(ctx context.Context, db *sql.DB, catalog Catalog) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}

	var inserted int64
	exec := func(query string, args ...interface{}) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		inserted += n
		return nil
	}

	for _, name := range catalog.CampaignTypes {
		if err := exec(insertCampaignType, name); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("seed campaign type %q: %w", name, err)
		}
	}
	for _, t := range catalog.Tokens {
		if err := exec(insertToken, t.Name, t.Symbol, t.Address, t.Decimal); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("seed token %q: %w", t.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}
