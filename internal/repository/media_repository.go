package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/indievia/indievia-backend/internal/models"
	"github.com/indievia/indievia-backend/internal/repository/common"
)

// MediaRepository работает с таблицей media_files.
type MediaRepository struct {
	db *sqlx.DB
}

// NewMediaRepository создаёт экземпляр.
func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// CreateBatch сохраняет записи о загруженных файлах одной транзакцией.
func (r *MediaRepository) CreateBatch(ctx context.Context, files []models.MediaFile) error {
	if len(files) == 0 {
		return nil
	}
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		inserter := common.NewBatchInserter(tx,
			`INSERT INTO media_files (user_id, purpose, file_path, url, file_type, file_size)`, 6, 50)
		for _, f := range files {
			if err := inserter.Add(ctx, f.UserID, f.Purpose, f.FilePath, f.URL, f.FileType, f.FileSize); err != nil {
				return fmt.Errorf("media repository: add %w", err)
			}
		}
		if err := inserter.Flush(ctx); err != nil {
			return fmt.Errorf("media repository: flush %w", err)
		}
		return nil
	})
}

// DeleteByURL удаляет запись о файле.
func (r *MediaRepository) DeleteByURL(ctx context.Context, url string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM media_files WHERE url = $1`, url); err != nil {
		return fmt.Errorf("media repository: delete %w", err)
	}
	return nil
}
