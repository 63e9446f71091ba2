package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"terlab/adapters/excel"
	"terlab/adapters/postgres"
	"terlab/app"
	"terlab/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// migrate applies the schema and optionally loads a post file into a session:
//
//	migrate <database_url> [post_file] [session_name]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [post_file] [session_name]")
	}

	databaseURL := os.Args[1]
	ctx := context.Background()

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema is up to date")

	if len(os.Args) < 3 {
		return
	}

	path := os.Args[2]
	sessionName := "default"
	if len(os.Args) > 3 {
		sessionName = os.Args[3]
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	sessions := app.NewSessionService(
		postgres.NewSessionRepository(db),
		postgres.NewPostRepository(db),
		excel.NewDataReader(excel.DefaultImportConfig()),
	)

	sess, result, err := sessions.Seed(ctx, sessionName, f, filepath.Base(path))
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Migration complete: %d posts imported into session %q (%d rows, %d skipped)",
		len(result.Posts), sess.Name, result.Rows, result.Skipped)
}
