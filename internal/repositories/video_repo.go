// Package repositories 提供数据访问层实现，基于 pgx 直接执行 SQL。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-videohub/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 500

const videoColumns = `
	id, title, description, filename, s3_bucket_name, s3_key_original,
	s3_key_thumbnail, status, created_at, updated_at`

// CreateVideoInput 描述新建视频记录所需字段，状态固定为 PENDING。
type CreateVideoInput struct {
	Title       string
	Description *string
	Filename    string
	BucketName  string
	OriginalKey string
}

// VideoRepository 维护 videos 表。
type VideoRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewVideoRepository 构造 VideoRepository。
func NewVideoRepository(pool *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{
		pool: pool,
		log:  log.NewHelper(logger),
	}
}

// Create 插入一条 PENDING 记录，id 与时间戳由数据库生成。
func (r *VideoRepository) Create(ctx context.Context, input CreateVideoInput) (*po.Video, error) {
	query := `
		INSERT INTO videos (title, description, filename, s3_bucket_name, s3_key_original, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + videoColumns

	v, err := scanVideo(r.pool.QueryRow(ctx, query,
		input.Title,
		input.Description,
		input.Filename,
		input.BucketName,
		input.OriginalKey,
		po.VideoStatusPending,
	))
	if err != nil {
		r.log.WithContext(ctx).Errorf("create video failed: key=%s err=%v", input.OriginalKey, err)
		return nil, fmt.Errorf("insert video: %w", err)
	}

	r.log.WithContext(ctx).Infof("created video: id=%s key=%s", v.ID, v.OriginalKey)
	return v, nil
}

// FindByID 根据 id 查询视频；不存在时返回 ErrVideoNotFound。
func (r *VideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*po.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	v, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("query video by id: %w", err)
	}
	return v, nil
}

// List 按创建时间倒序返回视频。limit <= 0 时使用默认上限。
func (r *VideoRepository) List(ctx context.Context, limit int) ([]po.Video, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY created_at DESC, id LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.log.WithContext(ctx).Errorf("list videos failed: %v", err)
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	videos := make([]po.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video row: %w", err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video rows: %w", err)
	}
	return videos, nil
}

// TransitionStatus 仅当当前状态等于 from 时更新为 to。
// 返回 false 表示记录不存在或状态已变化。
func (r *VideoRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to po.VideoStatus) (bool, error) {
	query := `
		UPDATE videos
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.WithContext(ctx).Errorf("transition video status failed: id=%s %s->%s err=%v", id, from, to, err)
		return false, fmt.Errorf("update video status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.log.WithContext(ctx).Infof("video status changed: id=%s %s->%s", id, from, to)
	return true, nil
}

func scanVideo(row pgx.Row) (*po.Video, error) {
	var v po.Video
	if err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Filename, &v.BucketName, &v.OriginalKey,
		&v.ThumbnailKey, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
