package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/pkg/database"
)

var loadDataDir string

// loaddataCmd imports seed CSV files. Files reference each other through
// numeric ids, so they are loaded in dependency order and the numeric ids are
// remapped to generated UUIDs along the way.
var loaddataCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Import seed data from CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			logger.Error("Failed to apply schema", zap.Error(err))
			return err
		}

		loader := &dataLoader{
			repo:       repository.NewRepository(db, logger),
			log:        logger,
			categories: make(map[string]uuid.UUID),
			genres:     make(map[string]uuid.UUID),
			titles:     make(map[string]uuid.UUID),
			users:      make(map[string]uuid.UUID),
			reviews:    make(map[string]uuid.UUID),
		}

		return loader.run(cmd.Context(), loadDataDir)
	},
}

func init() {
	loaddataCmd.Flags().StringVar(&loadDataDir, "dir", "data", "directory with CSV files")
	rootCmd.AddCommand(loaddataCmd)
}

type dataLoader struct {
	repo *repository.Repository
	log  *zap.Logger

	categories map[string]uuid.UUID
	genres     map[string]uuid.UUID
	titles     map[string]uuid.UUID
	users      map[string]uuid.UUID
	reviews    map[string]uuid.UUID
}

func (l *dataLoader) run(ctx context.Context, dir string) error {
	steps := []struct {
		file string
		load func(context.Context, map[string]string) error
	}{
		{"category.csv", l.loadCategory},
		{"genre.csv", l.loadGenre},
		{"titles.csv", l.loadTitle},
		{"genre_title.csv", l.loadTitleGenre},
		{"users.csv", l.loadUser},
		{"review.csv", l.loadReview},
		{"comments.csv", l.loadComment},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		count, err := l.loadFile(ctx, path, step.load)
		if err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
		l.log.Info("Loaded seed file", zap.String("file", step.file), zap.Int("rows", count))
	}

	return nil
}

// loadFile streams one CSV file row by row, passing each row to fn as a
// header-keyed map. A missing file is skipped so partial seed sets work.
func (l *dataLoader) loadFile(ctx context.Context, path string, fn func(context.Context, map[string]string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Warn("Seed file not found, skipping", zap.String("path", path))
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}

		if err := fn(ctx, row); err != nil {
			return count, fmt.Errorf("row %d: %w", count+1, err)
		}
		count++
	}
}

func (l *dataLoader) loadCategory(ctx context.Context, row map[string]string) error {
	now := time.Now()
	category := &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         row["name"],
		Slug:         row["slug"],
	}
	if err := l.repo.Category.Create(ctx, category); err != nil {
		return err
	}
	l.categories[row["id"]] = category.ID
	return nil
}

func (l *dataLoader) loadGenre(ctx context.Context, row map[string]string) error {
	now := time.Now()
	genre := &entity.Genre{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         row["name"],
		Slug:         row["slug"],
	}
	if err := l.repo.Genre.Create(ctx, genre); err != nil {
		return err
	}
	l.genres[row["id"]] = genre.ID
	return nil
}

func (l *dataLoader) loadTitle(ctx context.Context, row map[string]string) error {
	year, err := strconv.Atoi(row["year"])
	if err != nil {
		return fmt.Errorf("year %q: %w", row["year"], err)
	}

	var categoryID *uuid.UUID
	if raw := row["category"]; raw != "" {
		id, ok := l.categories[raw]
		if !ok {
			return fmt.Errorf("unknown category id %q", raw)
		}
		categoryID = &id
	}

	now := time.Now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         row["name"],
		Year:         year,
		CategoryID:   categoryID,
	}
	if err := l.repo.Title.Create(ctx, title); err != nil {
		return err
	}
	l.titles[row["id"]] = title.ID
	return nil
}

func (l *dataLoader) loadTitleGenre(ctx context.Context, row map[string]string) error {
	titleID, ok := l.titles[row["title_id"]]
	if !ok {
		return fmt.Errorf("unknown title id %q", row["title_id"])
	}
	genreID, ok := l.genres[row["genre_id"]]
	if !ok {
		return fmt.Errorf("unknown genre id %q", row["genre_id"])
	}
	return l.repo.TitleGenre.Add(ctx, titleID, genreID)
}

func (l *dataLoader) loadUser(ctx context.Context, row map[string]string) error {
	role := entity.UserRole(row["role"])
	if row["role"] == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", row["role"])
	}

	now := time.Now()
	user := &entity.User{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:  row["username"],
		Email:     row["email"],
		FirstName: optional(row["first_name"]),
		LastName:  optional(row["last_name"]),
		Bio:       optional(row["bio"]),
		Role:      role,
	}
	if err := l.repo.User.Create(ctx, user); err != nil {
		return err
	}
	l.users[row["id"]] = user.ID
	return nil
}

func (l *dataLoader) loadReview(ctx context.Context, row map[string]string) error {
	titleID, ok := l.titles[row["title_id"]]
	if !ok {
		return fmt.Errorf("unknown title id %q", row["title_id"])
	}
	authorID, ok := l.users[row["author"]]
	if !ok {
		return fmt.Errorf("unknown author id %q", row["author"])
	}
	score, err := strconv.Atoi(row["score"])
	if err != nil {
		return fmt.Errorf("score %q: %w", row["score"], err)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: parseSeedTime(row["pub_date"])},
		TitleID:    titleID,
		AuthorID:   authorID,
		Text:       row["text"],
		Score:      score,
	}
	if err := l.repo.Review.Create(ctx, review); err != nil {
		return err
	}
	l.reviews[row["id"]] = review.ID
	return nil
}

func (l *dataLoader) loadComment(ctx context.Context, row map[string]string) error {
	reviewID, ok := l.reviews[row["review_id"]]
	if !ok {
		return fmt.Errorf("unknown review id %q", row["review_id"])
	}
	authorID, ok := l.users[row["author"]]
	if !ok {
		return fmt.Errorf("unknown author id %q", row["author"])
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: parseSeedTime(row["pub_date"])},
		ReviewID:   reviewID,
		AuthorID:   authorID,
		Text:       row["text"],
	}
	return l.repo.Comment.Create(ctx, comment)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func parseSeedTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Now()
}
