package sqldb

import (
	"database/sql"
	"time"

	"github.com/wansing/gazette/core"
)

type SubscriptionDB struct {
	*sql.DB
	activeReaders *sql.Stmt
	follow        *sql.Stmt
	followed      *sql.Stmt
	followers     *sql.Stmt
	isFollowing   *sql.Stmt
	isSubscribed  *sql.Stmt
	subscribe     *sql.Stmt
	subscribed    *sql.Stmt
	subscribers   *sql.Stmt
	unfollow      *sql.Stmt
	unsubscribe   *sql.Stmt
}

func NewSubscriptionDB(db *sql.DB) *SubscriptionDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS subscription (
			reader integer NOT NULL,
			publisher integer NOT NULL,
			created bigint NOT NULL,
			PRIMARY KEY (reader, publisher)
		);`)

	db.Exec(`
		CREATE TABLE IF NOT EXISTS follow (
			reader integer NOT NULL,
			journalist integer NOT NULL,
			created bigint NOT NULL,
			PRIMARY KEY (reader, journalist)
		);`)

	var subscriptionDB = &SubscriptionDB{}
	subscriptionDB.DB = db
	subscriptionDB.activeReaders = mustPrepare(db, "SELECT "+userColumns+" FROM usr WHERE id IN (SELECT reader FROM subscription UNION SELECT reader FROM follow) ORDER BY id")
	subscriptionDB.follow = mustPrepare(db, "INSERT INTO follow (reader, journalist, created) VALUES (?, ?, ?)")
	subscriptionDB.followed = mustPrepare(db, "SELECT u.id, u.mail, u.name, u.salt, u.password, u.role, u.bio, u.created FROM usr u, follow f WHERE u.id = f.journalist AND f.reader = ? ORDER BY u.name")
	subscriptionDB.followers = mustPrepare(db, "SELECT u.id, u.mail, u.name, u.salt, u.password, u.role, u.bio, u.created FROM usr u, follow f WHERE u.id = f.reader AND f.journalist = ? ORDER BY u.name")
	subscriptionDB.isFollowing = mustPrepare(db, "SELECT COUNT(1) FROM follow WHERE reader = ? AND journalist = ?")
	subscriptionDB.isSubscribed = mustPrepare(db, "SELECT COUNT(1) FROM subscription WHERE reader = ? AND publisher = ?")
	subscriptionDB.subscribe = mustPrepare(db, "INSERT INTO subscription (reader, publisher, created) VALUES (?, ?, ?)")
	subscriptionDB.subscribed = mustPrepare(db, "SELECT p.id, p.name, p.description, p.website, p.created FROM publisher p, subscription s WHERE p.id = s.publisher AND s.reader = ? ORDER BY p.name")
	subscriptionDB.subscribers = mustPrepare(db, "SELECT u.id, u.mail, u.name, u.salt, u.password, u.role, u.bio, u.created FROM usr u, subscription s WHERE u.id = s.reader AND s.publisher = ? ORDER BY u.name")
	subscriptionDB.unfollow = mustPrepare(db, "DELETE FROM follow WHERE reader = ? AND journalist = ?")
	subscriptionDB.unsubscribe = mustPrepare(db, "DELETE FROM subscription WHERE reader = ? AND publisher = ?")
	return subscriptionDB
}

func (db *SubscriptionDB) queryUsers(stmt *sql.Stmt, args ...interface{}) ([]core.DBUser, error) {

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = []core.DBUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *SubscriptionDB) Follow(readerID, journalistID int) error {
	_, err := db.follow.Exec(readerID, journalistID, time.Now().Unix())
	return err
}

// GetActiveReaders returns all users with at least one subscription or followed journalist.
func (db *SubscriptionDB) GetActiveReaders() ([]core.DBUser, error) {
	return db.queryUsers(db.activeReaders)
}

func (db *SubscriptionDB) GetFollowedJournalists(readerID int) ([]core.DBUser, error) {
	return db.queryUsers(db.followed, readerID)
}

func (db *SubscriptionDB) GetFollowers(journalistID int) ([]core.DBUser, error) {
	return db.queryUsers(db.followers, journalistID)
}

func (db *SubscriptionDB) GetSubscribedPublishers(readerID int) ([]core.DBPublisher, error) {

	rows, err := db.subscribed.Query(readerID)
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

func (db *SubscriptionDB) GetSubscribers(publisherID int) ([]core.DBUser, error) {
	return db.queryUsers(db.subscribers, publisherID)
}

func (db *SubscriptionDB) IsFollowing(readerID, journalistID int) (bool, error) {
	var count int
	if err := db.isFollowing.QueryRow(readerID, journalistID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *SubscriptionDB) IsSubscribed(readerID, publisherID int) (bool, error) {
	var count int
	if err := db.isSubscribed.QueryRow(readerID, publisherID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (db *SubscriptionDB) Subscribe(readerID, publisherID int) error {
	_, err := db.subscribe.Exec(readerID, publisherID, time.Now().Unix())
	return err
}

func (db *SubscriptionDB) Unfollow(readerID, journalistID int) error {
	_, err := db.unfollow.Exec(readerID, journalistID)
	return err
}

func (db *SubscriptionDB) Unsubscribe(readerID, publisherID int) error {
	_, err := db.unsubscribe.Exec(readerID, publisherID)
	return err
}
