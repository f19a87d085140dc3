package sqldb

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/wansing/gazette/core"
)

type article struct {
	id          int
	title       string
	slug        string
	content     string
	excerpt     string
	author      int
	publisher   int
	status      core.Status
	reviewNote  string
	reviewer    int
	reviewedAt  int64
	publishedAt int64
	created     int64
	notified    bool
}

func (a *article) ID() int             { return a.id }
func (a *article) Title() string       { return a.title }
func (a *article) Slug() string        { return a.slug }
func (a *article) Content() string     { return a.content }
func (a *article) Excerpt() string     { return a.excerpt }
func (a *article) AuthorID() int       { return a.author }
func (a *article) PublisherID() int    { return a.publisher }
func (a *article) Status() core.Status { return a.status }
func (a *article) ReviewNote() string  { return a.reviewNote }
func (a *article) ReviewerID() int     { return a.reviewer }
func (a *article) ReviewedAt() int64   { return a.reviewedAt }
func (a *article) PublishedAt() int64  { return a.publishedAt }
func (a *article) Created() int64      { return a.created }
func (a *article) Notified() bool      { return a.notified }

const articleColumns = "id, title, slug, content, excerpt, author, publisher, status, review_note, reviewer, reviewed_at, published_at, created, notified"

func scanArticle(row interface{ Scan(...interface{}) error }) (*article, error) {
	var a = &article{}
	if err := row.Scan(&a.id, &a.title, &a.slug, &a.content, &a.excerpt, &a.author, &a.publisher, &a.status, &a.reviewNote, &a.reviewer, &a.reviewedAt, &a.publishedAt, &a.created, &a.notified); err != nil {
		return nil, err
	}
	return a, nil
}

// transition runs a status-guarded update. Zero affected rows means a
// concurrent request changed the status first.
func transition(stmt *sql.Stmt, args ...interface{}) error {
	res, err := stmt.Exec(args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrInvalidTransition
	}
	return nil
}

type ArticleDB struct {
	*sql.DB
	delete       *sql.Stmt
	get          *sql.Stmt
	getBySlug    *sql.Stmt
	insert       *sql.Stmt
	setDraft     *sql.Stmt
	setNotified  *sql.Stmt
	setPending   *sql.Stmt
	setPublished *sql.Stmt
	setRejected  *sql.Stmt
	slugTaken    *sql.Stmt
	update       *sql.Stmt
}

func NewArticleDB(db *sql.DB) *ArticleDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS article (
			id ` + serial() + `,
			title varchar(200) NOT NULL,
			slug varchar(250) NOT NULL,
			content text NOT NULL,
			excerpt text NOT NULL DEFAULT '',
			author integer NOT NULL,
			publisher integer NOT NULL DEFAULT 0,
			status varchar(16) NOT NULL DEFAULT 'draft',
			review_note text NOT NULL DEFAULT '',
			reviewer integer NOT NULL DEFAULT 0,
			reviewed_at bigint NOT NULL DEFAULT 0,
			published_at bigint NOT NULL DEFAULT 0,
			created bigint NOT NULL,
			notified boolean NOT NULL DEFAULT FALSE,
			UNIQUE(slug)
		);`)

	db.Exec(`CREATE INDEX IF NOT EXISTS article_status_idx ON article (status, published_at);`)
	db.Exec(`CREATE INDEX IF NOT EXISTS article_author_idx ON article (author);`)

	var articleDB = &ArticleDB{}
	articleDB.DB = db
	articleDB.delete = mustPrepare(db, "DELETE FROM article WHERE id = ?")
	articleDB.get = mustPrepare(db, "SELECT "+articleColumns+" FROM article WHERE id = ? LIMIT 1")
	articleDB.getBySlug = mustPrepare(db, "SELECT "+articleColumns+" FROM article WHERE slug = ? LIMIT 1")
	articleDB.insert = mustPrepare(db, "INSERT INTO article (title, slug, content, excerpt, author, publisher, status, created) VALUES (?, ?, ?, ?, ?, ?, 'draft', ?) RETURNING id")
	articleDB.setDraft = mustPrepare(db, "UPDATE article SET status = 'draft', review_note = '' WHERE id = ? AND status = 'rejected'")
	articleDB.setNotified = mustPrepare(db, "UPDATE article SET notified = TRUE WHERE id = ?")
	articleDB.setPending = mustPrepare(db, "UPDATE article SET status = 'pending' WHERE id = ? AND status = 'draft'")
	articleDB.setPublished = mustPrepare(db, "UPDATE article SET status = 'published', reviewer = ?, reviewed_at = ?, published_at = ? WHERE id = ? AND status = 'pending'")
	articleDB.setRejected = mustPrepare(db, "UPDATE article SET status = 'rejected', reviewer = ?, reviewed_at = ?, review_note = ? WHERE id = ? AND status = 'pending'")
	articleDB.slugTaken = mustPrepare(db, "SELECT COUNT(1) FROM article WHERE slug = ?")
	articleDB.update = mustPrepare(db, "UPDATE article SET title = ?, content = ?, excerpt = ?, publisher = ? WHERE id = ?")
	return articleDB
}

// filtered applies an ArticleFilter to a select builder.
func filtered(query sq.SelectBuilder, f core.ArticleFilter) sq.SelectBuilder {
	if f.Status != "" {
		query = query.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.AuthorID != 0 {
		query = query.Where(sq.Eq{"author": f.AuthorID})
	}
	if f.PublisherID != 0 {
		query = query.Where(sq.Eq{"publisher": f.PublisherID})
	}
	if f.ReaderID != 0 {
		query = query.Where(sq.Or{
			sq.Expr("publisher IN (SELECT publisher FROM subscription WHERE reader = ?)", f.ReaderID),
			sq.Expr("author IN (SELECT journalist FROM follow WHERE reader = ?)", f.ReaderID),
		})
	}
	if f.PublishedAfter != 0 {
		query = query.Where(sq.Gt{"published_at": f.PublishedAfter})
	}
	return query
}

func (db *ArticleDB) CountArticles(f core.ArticleFilter) (int, error) {

	sqlStr, args, err := filtered(stmtBuilder().Select("COUNT(1)").From("article"), f).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	return count, db.QueryRow(sqlStr, args...).Scan(&count)
}

func (db *ArticleDB) DeleteArticle(a core.DBArticle) error {
	_, err := db.delete.Exec(a.ID())
	return err
}

func (db *ArticleDB) GetArticle(id int) (core.DBArticle, error) {
	return scanArticle(db.get.QueryRow(id))
}

func (db *ArticleDB) GetArticleBySlug(slug string) (core.DBArticle, error) {
	return scanArticle(db.getBySlug.QueryRow(slug))
}

func (db *ArticleDB) GetArticles(f core.ArticleFilter, order core.Order, limit, offset int) ([]core.DBArticle, error) {

	var query = filtered(stmtBuilder().Select(articleColumns).From("article"), f)

	switch order {
	case core.CreatedDesc:
		query = query.OrderBy("created DESC", "id DESC")
	case core.CreatedAsc:
		query = query.OrderBy("created ASC", "id ASC")
	default:
		query = query.OrderBy("published_at DESC", "id ASC")
	}

	sqlStr, args, err := query.Limit(uint64(limit)).Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.DBArticle{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, a)
	}
	return all, rows.Err()
}

func (db *ArticleDB) InsertArticle(title, slug, content, excerpt string, authorID, publisherID int) (core.DBArticle, error) {
	var a = &article{
		title:     title,
		slug:      slug,
		content:   content,
		excerpt:   excerpt,
		author:    authorID,
		publisher: publisherID,
		status:    core.Draft,
		created:   time.Now().Unix(),
	}
	if err := db.insert.QueryRow(a.title, a.slug, a.content, a.excerpt, a.author, a.publisher, a.created).Scan(&a.id); err != nil {
		return nil, err
	}
	return a, nil
}

func (db *ArticleDB) SetDraft(a core.DBArticle) error {
	if err := transition(db.setDraft, a.ID()); err != nil {
		return err
	}
	var row = a.(*article)
	row.status = core.Draft
	row.reviewNote = ""
	return nil
}

func (db *ArticleDB) SetNotified(a core.DBArticle) error {
	if _, err := db.setNotified.Exec(a.ID()); err != nil {
		return err
	}
	a.(*article).notified = true
	return nil
}

func (db *ArticleDB) SetPending(a core.DBArticle) error {
	if err := transition(db.setPending, a.ID()); err != nil {
		return err
	}
	a.(*article).status = core.Pending
	return nil
}

func (db *ArticleDB) SetPublished(a core.DBArticle, reviewerID int, publishedAt int64) error {
	if err := transition(db.setPublished, reviewerID, publishedAt, publishedAt, a.ID()); err != nil {
		return err
	}
	var row = a.(*article)
	row.status = core.Published
	row.reviewer = reviewerID
	row.reviewedAt = publishedAt
	row.publishedAt = publishedAt
	return nil
}

func (db *ArticleDB) SetRejected(a core.DBArticle, reviewerID int, reviewedAt int64, note string) error {
	if err := transition(db.setRejected, reviewerID, reviewedAt, note, a.ID()); err != nil {
		return err
	}
	var row = a.(*article)
	row.status = core.Rejected
	row.reviewer = reviewerID
	row.reviewedAt = reviewedAt
	row.reviewNote = note
	return nil
}

func (db *ArticleDB) SlugTaken(slug string) (bool, error) {
	var count int
	if err := db.slugTaken.QueryRow(slug).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *ArticleDB) UpdateArticle(a core.DBArticle, title, content, excerpt string, publisherID int) error {
	if _, err := db.update.Exec(title, content, excerpt, publisherID, a.ID()); err != nil {
		return err
	}
	var row = a.(*article)
	row.title = title
	row.content = content
	row.excerpt = excerpt
	row.publisher = publisherID
	return nil
}
