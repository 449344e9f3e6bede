package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ppetru/igsync/internal/domain"
	apperrors "github.com/ppetru/igsync/pkg/errors"
	"github.com/ppetru/igsync/pkg/logger"
)

var sqBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var errBadQuery = errors.New("bad query")

type Sqlite struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSqlite(db *sql.DB, log logger.Logger) *Sqlite {
	return &Sqlite{
		db:     db,
		logger: log.WithComponent("LedgerRepo"),
	}
}

var _ Repository = (*Sqlite)(nil)

func (s *Sqlite) HasMedia(ctx context.Context, id string) (bool, error) {
	query, args, err := sqBuilder.
		Select("1").
		From("posts").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "has media")
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "has media")
	}
	return true, nil
}

func (s *Sqlite) StageMedia(ctx context.Context, item domain.MediaItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "stage media")
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := sqBuilder.
		Insert("posts").
		Options("OR IGNORE").
		Columns("id", "caption", "media_type", "permalink", "timestamp", "created_at").
		Values(item.ID, item.Caption, string(item.MediaType), item.Permalink,
			item.Timestamp.Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "stage media")
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "stage media")
	}

	for i, src := range item.Sources {
		query, args, err = sqBuilder.
			Insert("media_sources").
			Options("OR IGNORE").
			Columns("id", "post_id", "media_type", "media_url", "position").
			Values(src.ID, item.ID, string(src.MediaType), src.URL, i).
			ToSql()
		if err != nil {
			return apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "stage media source")
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "stage media source")
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "stage media")
	}
	return nil
}

func (s *Sqlite) PendingMedia(ctx context.Context) ([]domain.MediaItem, error) {
	query, args, err := sqBuilder.
		Select("id", "caption", "media_type", "permalink", "timestamp").
		From("posts").
		Where("wp_post_id IS NULL").
		OrderBy("timestamp ASC").
		ToSql()
	if err != nil {
		return nil, apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "pending media")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "pending media")
	}
	defer rows.Close()

	var items []domain.MediaItem
	for rows.Next() {
		var item domain.MediaItem
		var mediaType, timestamp string
		if err := rows.Scan(&item.ID, &item.Caption, &mediaType, &item.Permalink, &timestamp); err != nil {
			return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "pending media")
		}
		item.MediaType = domain.MediaType(mediaType)
		item.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "pending media timestamp")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "pending media")
	}

	for i := range items {
		sources, err := s.sourcesFor(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Sources = sources
	}

	return items, nil
}

func (s *Sqlite) sourcesFor(ctx context.Context, postID string) ([]domain.MediaSource, error) {
	query, args, err := sqBuilder.
		Select("id", "media_type", "media_url").
		From("media_sources").
		Where(sq.Eq{"post_id": postID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "media sources")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "media sources")
	}
	defer rows.Close()

	var sources []domain.MediaSource
	for rows.Next() {
		var src domain.MediaSource
		var mediaType string
		if err := rows.Scan(&src.ID, &mediaType, &src.URL); err != nil {
			return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "media sources")
		}
		src.MediaType = domain.MediaType(mediaType)
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "media sources")
	}
	return sources, nil
}

func (s *Sqlite) RecordPost(ctx context.Context, mediaID string, wpPostID int) error {
	query, args, err := sqBuilder.
		Update("posts").
		Set("wp_post_id", wpPostID).
		Where(sq.Eq{"id": mediaID}).
		ToSql()
	if err != nil {
		return apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "record post")
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "record post")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "record post")
	}
	if affected == 0 {
		return apperrors.WrapKind(ErrNotFound, apperrors.ErrLedgerIO, "record post")
	}
	return nil
}

func (s *Sqlite) BinaryRef(ctx context.Context, hash string) (domain.MediaRef, bool, error) {
	query, args, err := sqBuilder.
		Select("wp_media_id", "wp_url").
		From("binaries").
		Where(sq.Eq{"content_hash": hash}).
		ToSql()
	if err != nil {
		return domain.MediaRef{}, false, apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "binary ref")
	}

	var ref domain.MediaRef
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&ref.ID, &ref.SourceURL)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MediaRef{}, false, nil
	}
	if err != nil {
		return domain.MediaRef{}, false, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "binary ref")
	}
	return ref, true, nil
}

func (s *Sqlite) RecordBinary(ctx context.Context, hash string, ref domain.MediaRef) error {
	query, args, err := sqBuilder.
		Insert("binaries").
		Options("OR IGNORE").
		Columns("content_hash", "wp_media_id", "wp_url", "created_at").
		Values(hash, ref.ID, ref.SourceURL, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "record binary")
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.WrapKind(err, apperrors.ErrLedgerIO, "record binary")
	}
	return nil
}

func (s *Sqlite) ResetBinaries(ctx context.Context) (int64, error) {
	query, args, err := sqBuilder.Delete("binaries").ToSql()
	if err != nil {
		return 0, apperrors.WrapKind(errBadQuery, apperrors.ErrLedgerIO, "reset binaries")
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "reset binaries")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.WrapKind(err, apperrors.ErrLedgerIO, "reset binaries")
	}

	s.logger.Info("Reset all media upload records", "rows", affected)
	return affected, nil
}
