package sqldb

import (
	"database/sql"
	"strings"
	"time"

	"github.com/wansing/gazette/core"
)

type publisher struct {
	id          int
	name        string
	description string
	website     string
	created     int64
}

func (p *publisher) ID() int             { return p.id }
func (p *publisher) Name() string        { return p.name }
func (p *publisher) Description() string { return p.description }
func (p *publisher) Website() string     { return p.website }
func (p *publisher) Created() int64      { return p.created }

const publisherColumns = "id, name, description, website, created"

func scanPublisher(row interface{ Scan(...interface{}) error }) (*publisher, error) {
	var p = &publisher{}
	if err := row.Scan(&p.id, &p.name, &p.description, &p.website, &p.created); err != nil {
		return nil, err
	}
	return p, nil
}

type PublisherDB struct {
	*sql.DB
	addStaff    *sql.Stmt
	get         *sql.Stmt
	getAll      *sql.Stmt
	getByName   *sql.Stmt
	getOf       *sql.Stmt
	getStaff    *sql.Stmt
	insert      *sql.Stmt
	removeStaff *sql.Stmt
}

func NewPublisherDB(db *sql.DB) *PublisherDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS publisher (
			id ` + serial() + `,
			name varchar(200) NOT NULL,
			description text NOT NULL DEFAULT '',
			website varchar(400) NOT NULL DEFAULT '',
			created bigint NOT NULL,
			UNIQUE(name)
		);`)

	db.Exec(`
		CREATE TABLE IF NOT EXISTS publisher_staff (
			publisher integer NOT NULL,
			usr integer NOT NULL,
			PRIMARY KEY (publisher, usr)
		);`)

	var publisherDB = &PublisherDB{}
	publisherDB.DB = db
	publisherDB.addStaff = mustPrepare(db, "INSERT INTO publisher_staff (publisher, usr) VALUES (?, ?)")
	publisherDB.get = mustPrepare(db, "SELECT "+publisherColumns+" FROM publisher WHERE id = ? LIMIT 1")
	publisherDB.getAll = mustPrepare(db, "SELECT "+publisherColumns+" FROM publisher ORDER BY name LIMIT ? OFFSET ?")
	publisherDB.getByName = mustPrepare(db, "SELECT "+publisherColumns+" FROM publisher WHERE name = ? LIMIT 1")
	publisherDB.getOf = mustPrepare(db, "SELECT p.id, p.name, p.description, p.website, p.created FROM publisher p, publisher_staff s WHERE p.id = s.publisher AND s.usr = ? ORDER BY p.name")
	publisherDB.getStaff = mustPrepare(db, "SELECT u.id, u.mail, u.name, u.salt, u.password, u.role, u.bio, u.created FROM usr u, publisher_staff s WHERE u.id = s.usr AND s.publisher = ? ORDER BY u.name")
	publisherDB.insert = mustPrepare(db, "INSERT INTO publisher (name, description, website, created) VALUES (?, ?, ?, ?) RETURNING id")
	publisherDB.removeStaff = mustPrepare(db, "DELETE FROM publisher_staff WHERE publisher = ? AND usr = ?")
	return publisherDB
}

func (db *PublisherDB) AddStaff(p core.DBPublisher, u core.DBUser) error {
	_, err := db.addStaff.Exec(p.ID(), u.ID())
	return err
}

func (db *PublisherDB) GetAllPublishers(limit, offset int) ([]core.DBPublisher, error) {

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.DBPublisher{}
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, p)
	}
	return all, rows.Err()
}

func (db *PublisherDB) GetPublisher(id int) (core.DBPublisher, error) {
	return scanPublisher(db.get.QueryRow(id))
}

func (db *PublisherDB) GetPublisherByName(name string) (core.DBPublisher, error) {
	return scanPublisher(db.getByName.QueryRow(strings.TrimSpace(name)))
}

func (db *PublisherDB) GetPublishersOf(u core.DBUser) ([]core.DBPublisher, error) {

	rows, err := db.getOf.Query(u.ID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.DBPublisher{}
	for rows.Next() {
		p, err := scanPublisher(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, p)
	}
	return all, rows.Err()
}

func (db *PublisherDB) GetStaff(p core.DBPublisher) ([]core.DBUser, error) {

	rows, err := db.getStaff.Query(p.ID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff = []core.DBUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, u)
	}
	return staff, rows.Err()
}

func (db *PublisherDB) InsertPublisher(name, description, website string) (core.DBPublisher, error) {
	var p = &publisher{
		name:        strings.TrimSpace(name),
		description: description,
		website:     website,
		created:     time.Now().Unix(),
	}
	if err := db.insert.QueryRow(p.name, p.description, p.website, p.created).Scan(&p.id); err != nil {
		return nil, err
	}
	return p, nil
}

func (db *PublisherDB) RemoveStaff(p core.DBPublisher, u core.DBUser) error {
	_, err := db.removeStaff.Exec(p.ID(), u.ID())
	return err
}
