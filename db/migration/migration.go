// Package migration embeds the database schema and applies it.
package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-petr/pet-ledger/pkg/dbpkg"
)

//go:embed *.sql
var files embed.FS

// Up applies every up migration in version order.
//
// Statements are idempotent, so running Up on a migrated database is a no-op.
func Up(ctx context.Context, db dbpkg.SQLInterface) error {
	return apply(ctx, db, ".up.sql", false)
}

// Down reverts every migration in reverse version order.
func Down(ctx context.Context, db dbpkg.SQLInterface) error {
	return apply(ctx, db, ".down.sql", true)
}

func apply(ctx context.Context, db dbpkg.SQLInterface, suffix string, reverse bool) error {
	names, err := fs.Glob(files, "*"+suffix)
	if err != nil {
		return err
	}

	sort.Strings(names)

	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}

	for _, name := range names {
		stmt, err := files.ReadFile(name)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(stmt)) == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}

	return nil
}
