package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// ErrNotFound is returned by stores when no row matches.
var ErrNotFound = errors.New("record not found")

const UserFoldersSchema = `
	CREATE SEQUENCE IF NOT EXISTS user_folders_id_seq START 1;
	CREATE TABLE IF NOT EXISTS user_folders (
		id BIGINT PRIMARY KEY DEFAULT nextval('user_folders_id_seq'),
		user_id BIGINT NOT NULL,
		name VARCHAR NOT NULL
	);
`

const UserDataSchema = `
	CREATE SEQUENCE IF NOT EXISTS user_data_id_seq START 1;
	CREATE TABLE IF NOT EXISTS user_data (
		id BIGINT PRIMARY KEY DEFAULT nextval('user_data_id_seq'),
		user_id BIGINT NOT NULL,
		p_index_id BIGINT NOT NULL,
		p_period_id BIGINT NOT NULL,
		p_terms VARCHAR NOT NULL,
		p_term_id BIGINT NOT NULL,
		p_dicIds VARCHAR NOT NULL,
		idx BIGINT NOT NULL,
		chart_type VARCHAR NOT NULL,
		selected_data VARCHAR NOT NULL,
		primary_data VARCHAR NOT NULL,
		folder_id BIGINT NULL
	);
`

const IndicatorsSchema = `
	CREATE SEQUENCE IF NOT EXISTS indicators_id_seq START 1;
	CREATE TABLE IF NOT EXISTS indicators (
		id BIGINT PRIMARY KEY DEFAULT nextval('indicators_id_seq'),
		name VARCHAR NOT NULL
	);
`

var bootQueries = []string{
	UserFoldersSchema,
	UserDataSchema,
	IndicatorsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	c, err := duckdb.NewConnector(settings.DbPath, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return fmt.Errorf("boot schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}
