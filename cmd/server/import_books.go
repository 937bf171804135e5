package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shrey-c/BookRecommender/internal/config"
	"github.com/shrey-c/BookRecommender/internal/db"
	"github.com/shrey-c/BookRecommender/internal/logging"
	"github.com/shrey-c/BookRecommender/models"
	"github.com/shrey-c/BookRecommender/repository"
)

// newImportBooksCmd bulk-loads a book catalog CSV in the Book-Crossing
// dump layout:
// ISBN;Title;Author;Year-Of-Publication;Publisher;Image-URL-S;Image-URL-M;Image-URL-L
func newImportBooksCmd() *cobra.Command {
	var sep string
	cmd := &cobra.Command{
		Use:   "import-books <file.csv>",
		Short: "Bulk import a book catalog from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults()
			if err != nil {
				return err
			}
			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer d.Close()

			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return err
			}
			defer f.Close()

			if len(sep) != 1 {
				return fmt.Errorf("separator must be a single character, got %q", sep)
			}
			imported, skipped, err := importBooks(cmd.Context(), repository.NewBookRepository(d), f, rune(sep[0]))
			if err != nil {
				return err
			}
			logging.Info().Int("imported", imported).Int("skipped", skipped).Msg("catalog import finished")
			return nil
		},
	}
	cmd.Flags().StringVar(&sep, "separator", ";", "CSV field separator")
	return cmd
}

// importBooks reads catalog rows and inserts them one by one. Malformed rows
// and duplicate ISBNs are skipped (counted), not fatal.
func importBooks(ctx context.Context, books *repository.BookRepository, r io.Reader, sep rune) (imported, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		// Malformed rows are skipped; any other read error is persistent
		// (the reader keeps returning it) and has to abort the import.
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return imported, skipped, err
		}
		if len(rec) < 2 {
			skipped++
			continue
		}
		// Header row.
		if strings.EqualFold(strings.TrimSpace(rec[0]), "isbn") {
			continue
		}

		b := &models.Book{ISBN: strings.TrimSpace(rec[0]), Title: rec[1]}
		if b.ISBN == "" || b.Title == "" {
			skipped++
			continue
		}
		if len(rec) > 2 {
			b.Author = rec[2]
		}
		if len(rec) > 3 {
			if year, err := strconv.ParseUint(strings.TrimSpace(rec[3]), 10, 32); err == nil {
				b.YearOfPub = uint(year)
			}
		}
		if len(rec) > 4 {
			b.Publisher = rec[4]
		}
		if len(rec) > 7 {
			b.ImgURLS, b.ImgURLM, b.ImgURLL = rec[5], rec[6], rec[7]
		}

		switch err := books.Create(ctx, b); {
		case err == nil:
			imported++
		case errors.Is(err, repository.ErrDuplicate):
			skipped++
		default:
			return imported, skipped, err
		}
	}
	return imported, skipped, nil
}
