package sqldb

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/wansing/gazette/core"
)

type newsletter struct {
	id          int
	title       string
	slug        string
	content     string
	excerpt     string
	author      int
	publisher   int
	status      core.Status
	publishedAt int64
	created     int64
}

func (n *newsletter) ID() int             { return n.id }
func (n *newsletter) Title() string       { return n.title }
func (n *newsletter) Slug() string        { return n.slug }
func (n *newsletter) Content() string     { return n.content }
func (n *newsletter) Excerpt() string     { return n.excerpt }
func (n *newsletter) AuthorID() int       { return n.author }
func (n *newsletter) PublisherID() int    { return n.publisher }
func (n *newsletter) Status() core.Status { return n.status }
func (n *newsletter) PublishedAt() int64  { return n.publishedAt }
func (n *newsletter) Created() int64      { return n.created }

const newsletterColumns = "id, title, slug, content, excerpt, author, publisher, status, published_at, created"

func scanNewsletter(row interface{ Scan(...interface{}) error }) (*newsletter, error) {
	var n = &newsletter{}
	if err := row.Scan(&n.id, &n.title, &n.slug, &n.content, &n.excerpt, &n.author, &n.publisher, &n.status, &n.publishedAt, &n.created); err != nil {
		return nil, err
	}
	return n, nil
}

type NewsletterDB struct {
	*sql.DB
	get          *sql.Stmt
	getBySlug    *sql.Stmt
	insert       *sql.Stmt
	setPublished *sql.Stmt
	slugTaken    *sql.Stmt
	update       *sql.Stmt
}

func NewNewsletterDB(db *sql.DB) *NewsletterDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS newsletter (
			id ` + serial() + `,
			title varchar(200) NOT NULL,
			slug varchar(250) NOT NULL,
			content text NOT NULL,
			excerpt text NOT NULL DEFAULT '',
			author integer NOT NULL,
			publisher integer NOT NULL DEFAULT 0,
			status varchar(16) NOT NULL DEFAULT 'draft',
			published_at bigint NOT NULL DEFAULT 0,
			created bigint NOT NULL,
			UNIQUE(slug)
		);`)

	var newsletterDB = &NewsletterDB{}
	newsletterDB.DB = db
	newsletterDB.get = mustPrepare(db, "SELECT "+newsletterColumns+" FROM newsletter WHERE id = ? LIMIT 1")
	newsletterDB.getBySlug = mustPrepare(db, "SELECT "+newsletterColumns+" FROM newsletter WHERE slug = ? LIMIT 1")
	newsletterDB.insert = mustPrepare(db, "INSERT INTO newsletter (title, slug, content, excerpt, author, publisher, status, created) VALUES (?, ?, ?, ?, ?, ?, 'draft', ?) RETURNING id")
	newsletterDB.setPublished = mustPrepare(db, "UPDATE newsletter SET status = 'published', published_at = ? WHERE id = ? AND status = 'draft'")
	newsletterDB.slugTaken = mustPrepare(db, "SELECT COUNT(1) FROM newsletter WHERE slug = ?")
	newsletterDB.update = mustPrepare(db, "UPDATE newsletter SET title = ?, content = ?, excerpt = ?, publisher = ? WHERE id = ?")
	return newsletterDB
}

// newsletterQuery narrows by status and author. Zero values mean "any".
func newsletterQuery(columns string, status core.Status, authorID int) sq.SelectBuilder {
	var query = stmtBuilder().Select(columns).From("newsletter")
	if status != "" {
		query = query.Where(sq.Eq{"status": string(status)})
	}
	if authorID != 0 {
		query = query.Where(sq.Eq{"author": authorID})
	}
	return query
}

func (db *NewsletterDB) CountNewsletters(status core.Status, authorID int) (int, error) {

	sqlStr, args, err := newsletterQuery("COUNT(1)", status, authorID).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	return count, db.QueryRow(sqlStr, args...).Scan(&count)
}

func (db *NewsletterDB) GetNewsletter(id int) (core.DBNewsletter, error) {
	return scanNewsletter(db.get.QueryRow(id))
}

func (db *NewsletterDB) GetNewsletterBySlug(slug string) (core.DBNewsletter, error) {
	return scanNewsletter(db.getBySlug.QueryRow(slug))
}

func (db *NewsletterDB) GetNewsletters(status core.Status, authorID int, limit, offset int) ([]core.DBNewsletter, error) {

	var query = newsletterQuery(newsletterColumns, status, authorID)
	if status == core.Published {
		query = query.OrderBy("published_at DESC", "id ASC")
	} else {
		query = query.OrderBy("created DESC", "id DESC")
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

	var all = []core.DBNewsletter{}
	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, n)
	}
	return all, rows.Err()
}

func (db *NewsletterDB) InsertNewsletter(title, slug, content, excerpt string, authorID, publisherID int) (core.DBNewsletter, error) {
	var n = &newsletter{
		title:     title,
		slug:      slug,
		content:   content,
		excerpt:   excerpt,
		author:    authorID,
		publisher: publisherID,
		status:    core.Draft,
		created:   time.Now().Unix(),
	}
	if err := db.insert.QueryRow(n.title, n.slug, n.content, n.excerpt, n.author, n.publisher, n.created).Scan(&n.id); err != nil {
		return nil, err
	}
	return n, nil
}

func (db *NewsletterDB) NewsletterSlugTaken(slug string) (bool, error) {
	var count int
	if err := db.slugTaken.QueryRow(slug).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *NewsletterDB) SetNewsletterPublished(n core.DBNewsletter, publishedAt int64) error {
	if err := transition(db.setPublished, publishedAt, n.ID()); err != nil {
		return err
	}
	var row = n.(*newsletter)
	row.status = core.Published
	row.publishedAt = publishedAt
	return nil
}

func (db *NewsletterDB) UpdateNewsletter(n core.DBNewsletter, title, content, excerpt string, publisherID int) error {
	if _, err := db.update.Exec(title, content, excerpt, publisherID, n.ID()); err != nil {
		return err
	}
	var row = n.(*newsletter)
	row.title = title
	row.content = content
	row.excerpt = excerpt
	row.publisher = publisherID
	return nil
}
