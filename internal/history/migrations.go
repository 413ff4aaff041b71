package history

import (
	"database/sql"

	"github.com/HerbHall/slidecraft/internal/store"
)

func migrations() []store.Migration {
	return []store.Migration{
		{
			Version:     1,
			Description: "create presentations table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE presentations (
						id          TEXT     PRIMARY KEY,
						title       TEXT     NOT NULL,
						audience    TEXT     NOT NULL DEFAULT '',
						slide_count INTEGER  NOT NULL,
						body        TEXT     NOT NULL,
						created_at  DATETIME NOT NULL
					);
					CREATE INDEX idx_presentations_created_at ON presentations(created_at);
				`)
				return err
			},
		},
	}
}
