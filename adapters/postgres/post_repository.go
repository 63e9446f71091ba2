package postgres

import (
	"context"
	"database/sql"
	"time"

	"terlab/domain/core"
	"terlab/domain/metric"
	"terlab/domain/post"
	"terlab/internal/errors"
	"terlab/ports"

	"github.com/jmoiron/sqlx"
)

// postRow is the flat storage shape of a post
type postRow struct {
	ID        string `db:"id"`
	SessionID string `db:"session_id"`
	URL       string `db:"url"`
	Author    string `db:"author"`
	Content   string `db:"content"`
	PostedAt  string `db:"posted_at"`
	Notes     string `db:"notes"`

	metric.Counts
	post.ManualCounts
	metric.Result

	CuratedRate sql.NullFloat64 `db:"curated_rate"`

	TriggerFear     int `db:"trigger_fear"`
	TriggerAnger    int `db:"trigger_anger"`
	TriggerOutrage  int `db:"trigger_outrage"`
	TriggerDisgust  int `db:"trigger_disgust"`
	TriggerIdentity int `db:"trigger_identity"`
	TriggerHope     int `db:"trigger_hope"`

	FrameVictimPerpetrator int `db:"frame_victim_perpetrator"`
	FrameThreat            int `db:"frame_threat"`
	FrameConspiracy        int `db:"frame_conspiracy"`
	FrameMoral             int `db:"frame_moral"`
	FrameHistorical        int `db:"frame_historical"`

	Reviewed bool `db:"is_reviewed"`
	Archived bool `db:"is_archived"`
	Excluded bool `db:"is_excluded"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const postColumns = `id, session_id, url, author, content, posted_at, notes,
	likes, bookmarks, replies, retweets, quotes, views,
	likes_manual, bookmarks_manual, replies_manual, retweets_manual, quotes_manual, views_manual,
	weighted_engagement, rate_sqrt, rate_linear, total_interactions, level_code, level_label,
	curated_rate,
	trigger_fear, trigger_anger, trigger_outrage, trigger_disgust, trigger_identity, trigger_hope,
	frame_victim_perpetrator, frame_threat, frame_conspiracy, frame_moral, frame_historical,
	is_reviewed, is_archived, is_excluded, created_at, updated_at`

const insertPostSQL = `INSERT INTO posts (` + postColumns + `) VALUES (
	:id, :session_id, :url, :author, :content, :posted_at, :notes,
	:likes, :bookmarks, :replies, :retweets, :quotes, :views,
	:likes_manual, :bookmarks_manual, :replies_manual, :retweets_manual, :quotes_manual, :views_manual,
	:weighted_engagement, :rate_sqrt, :rate_linear, :total_interactions, :level_code, :level_label,
	:curated_rate,
	:trigger_fear, :trigger_anger, :trigger_outrage, :trigger_disgust, :trigger_identity, :trigger_hope,
	:frame_victim_perpetrator, :frame_threat, :frame_conspiracy, :frame_moral, :frame_historical,
	:is_reviewed, :is_archived, :is_excluded, :created_at, :updated_at)`

const updatePostSQL = `UPDATE posts SET
	author = :author, content = :content, posted_at = :posted_at, notes = :notes,
	likes_manual = :likes_manual, bookmarks_manual = :bookmarks_manual, replies_manual = :replies_manual,
	retweets_manual = :retweets_manual, quotes_manual = :quotes_manual, views_manual = :views_manual,
	weighted_engagement = :weighted_engagement, rate_sqrt = :rate_sqrt, rate_linear = :rate_linear,
	total_interactions = :total_interactions, level_code = :level_code, level_label = :level_label,
	curated_rate = :curated_rate,
	trigger_fear = :trigger_fear, trigger_anger = :trigger_anger, trigger_outrage = :trigger_outrage,
	trigger_disgust = :trigger_disgust, trigger_identity = :trigger_identity, trigger_hope = :trigger_hope,
	frame_victim_perpetrator = :frame_victim_perpetrator, frame_threat = :frame_threat,
	frame_conspiracy = :frame_conspiracy, frame_moral = :frame_moral, frame_historical = :frame_historical,
	is_reviewed = :is_reviewed, is_archived = :is_archived, is_excluded = :is_excluded,
	updated_at = :updated_at
	WHERE id = :id`

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func rowFromPost(p post.Post) postRow {
	row := postRow{
		ID:           p.ID.String(),
		SessionID:    p.SessionID.String(),
		URL:          p.URL,
		Author:       p.Author,
		Content:      p.Content,
		PostedAt:     p.PostedAt,
		Notes:        p.Notes,
		Counts:       p.Counts,
		ManualCounts: p.Manual,
		Result:       p.Metric,
		Reviewed:     p.Reviewed,
		Archived:     p.Archived,
		Excluded:     p.Excluded,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,

		TriggerFear:     p.Triggers[post.Fear],
		TriggerAnger:    p.Triggers[post.Anger],
		TriggerOutrage:  p.Triggers[post.Outrage],
		TriggerDisgust:  p.Triggers[post.Disgust],
		TriggerIdentity: p.Triggers[post.Identity],
		TriggerHope:     p.Triggers[post.Hope],

		FrameVictimPerpetrator: boolToInt(p.Frames[post.VictimPerpetrator]),
		FrameThreat:            boolToInt(p.Frames[post.Threat]),
		FrameConspiracy:        boolToInt(p.Frames[post.Conspiracy]),
		FrameMoral:             boolToInt(p.Frames[post.Moral]),
		FrameHistorical:        boolToInt(p.Frames[post.Historical]),
	}
	if p.CuratedRate != nil {
		row.CuratedRate = sql.NullFloat64{Float64: *p.CuratedRate, Valid: true}
	}
	return row
}

func (row postRow) toPost() post.Post {
	p := post.Post{
		ID:        core.PostID(row.ID),
		SessionID: core.SessionID(row.SessionID),
		URL:       row.URL,
		Author:    row.Author,
		Content:   row.Content,
		PostedAt:  row.PostedAt,
		Notes:     row.Notes,
		Counts:    row.Counts,
		Manual:    row.ManualCounts,
		Metric:    row.Result,
		Reviewed:  row.Reviewed,
		Archived:  row.Archived,
		Excluded:  row.Excluded,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.CuratedRate.Valid {
		rate := row.CuratedRate.Float64
		p.CuratedRate = &rate
	}

	p.SetTrigger(post.Fear, row.TriggerFear)
	p.SetTrigger(post.Anger, row.TriggerAnger)
	p.SetTrigger(post.Outrage, row.TriggerOutrage)
	p.SetTrigger(post.Disgust, row.TriggerDisgust)
	p.SetTrigger(post.Identity, row.TriggerIdentity)
	p.SetTrigger(post.Hope, row.TriggerHope)

	p.Frames[post.VictimPerpetrator] = row.FrameVictimPerpetrator == 1
	p.Frames[post.Threat] = row.FrameThreat == 1
	p.Frames[post.Conspiracy] = row.FrameConspiracy == 1
	p.Frames[post.Moral] = row.FrameMoral == 1
	p.Frames[post.Historical] = row.FrameHistorical == 1
	return p
}

// postRepository implements PostRepository for PostgreSQL
type postRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sqlx.DB) ports.PostRepository {
	return &postRepository{db: db}
}

// ReplaceSessionPosts deletes the session's posts and inserts the new set in one transaction
func (r *postRepository) ReplaceSessionPosts(ctx context.Context, sessionID core.SessionID, posts []post.Post) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE session_id = $1`, sessionID); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to clear session posts")
	}

	now := time.Now().UTC()
	for i := range posts {
		p := posts[i]
		p.SessionID = sessionID
		if p.ID.String() == "" {
			p.ID = core.NewPostID()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertPostSQL, rowFromPost(p)); err != nil {
			return errors.Wrapf(errors.WithCode(errors.CodeDatabaseError, err), "failed to insert post %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to commit import")
	}
	return nil
}

// ListBySession returns the session's posts
func (r *postRepository) ListBySession(ctx context.Context, sessionID core.SessionID) ([]post.Post, error) {
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+postColumns+`
		FROM posts
		WHERE session_id = $1
		ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to list posts")
	}
	return toPosts(rows), nil
}

func toPosts(rows []postRow) []post.Post {
	posts := make([]post.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts
}

// ListByArchived returns the session's archived posts, most recently changed
// first, or its non-archived posts in insertion order
func (r *postRepository) ListByArchived(ctx context.Context, sessionID core.SessionID, archived bool) ([]post.Post, error) {
	order := "created_at, id"
	if archived {
		order = "updated_at DESC, id"
	}

	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+postColumns+`
		FROM posts
		WHERE session_id = $1 AND is_archived = $2
		ORDER BY `+order, sessionID, archived)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to list posts")
	}
	return toPosts(rows), nil
}

// Get retrieves a post by ID
func (r *postRepository) Get(ctx context.Context, id core.PostID) (*post.Post, error) {
	var row postRow
	err := r.db.GetContext(ctx, &row, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "post", "failed to get post")
	}
	p := row.toPost()
	return &p, nil
}

// Update persists editable fields of a post
func (r *postRepository) Update(ctx context.Context, p *post.Post) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx, updatePostSQL, rowFromPost(*p))
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to update post")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("post")
	}
	return nil
}

// Delete removes a post
func (r *postRepository) Delete(ctx context.Context, id core.PostID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to delete post")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("post")
	}
	return nil
}
