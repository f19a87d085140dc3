package sqldb

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/util"
)

// don't reveal whether the mail address or the password was wrong
var ErrAuth = errors.New("wrong mail address or password")

func clean(mail string) string {
	mail = strings.TrimSpace(mail)
	mail = strings.ToLower(mail)
	return mail
}

func hash(salt string, password string) string {
	var h = sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(h[:])
}

type user struct {
	id      int
	mail    string
	name    string
	salt    string
	pass    string // hash
	role    core.Role
	bio     string
	created int64
}

func (u *user) hash(password string) string {
	return hash(u.salt, password)
}

func (u *user) ID() int         { return u.id }
func (u *user) Mail() string    { return u.mail }
func (u *user) Name() string    { return u.name }
func (u *user) Role() core.Role { return u.role }
func (u *user) Bio() string     { return u.bio }
func (u *user) Created() int64  { return u.created }

const userColumns = "id, mail, name, salt, password, role, bio, created"

func scanUser(row interface{ Scan(...interface{}) error }) (*user, error) {
	var u = &user{}
	if err := row.Scan(&u.id, &u.mail, &u.name, &u.salt, &u.pass, &u.role, &u.bio, &u.created); err != nil {
		return nil, err
	}
	return u, nil
}

type UserDB struct {
	*sql.DB
	get         *sql.Stmt
	getByMail   *sql.Stmt
	insert      *sql.Stmt
	setBio      *sql.Stmt
	setPassword *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS usr (
			id ` + serial() + `,
			mail varchar(128) NOT NULL,
			name varchar(128) NOT NULL,
			salt varchar(64) NOT NULL,
			password varchar(64) NOT NULL,
			role integer NOT NULL,
			bio text NOT NULL DEFAULT '',
			created bigint NOT NULL,
			UNIQUE(mail)
		);`)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.get = mustPrepare(db, "SELECT "+userColumns+" FROM usr WHERE id = ? LIMIT 1")
	userDB.getByMail = mustPrepare(db, "SELECT "+userColumns+" FROM usr WHERE mail = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO usr (mail, name, salt, password, role, bio, created) VALUES (?, ?, '', '', ?, '', ?) RETURNING id") // empty password hash never matches
	userDB.setBio = mustPrepare(db, "UPDATE usr SET bio = ? WHERE id = ?")
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET salt = ?, password = ? WHERE id = ?")
	return userDB
}

func (db *UserDB) ChangePassword(u core.DBUser, old, new string) error {
	var row = u.(*user)
	if row.hash(old) != row.pass {
		return ErrAuth
	}
	return db.SetPassword(u, new)
}

func (db *UserDB) GetUser(id int) (core.DBUser, error) {
	return scanUser(db.get.QueryRow(id))
}

func (db *UserDB) GetUserByMail(mail string) (core.DBUser, error) {
	return scanUser(db.getByMail.QueryRow(clean(mail)))
}

func (db *UserDB) InsertUser(mail, name string, role core.Role) (core.DBUser, error) {
	var u = &user{
		mail:    clean(mail),
		name:    strings.TrimSpace(name),
		role:    role,
		created: time.Now().Unix(),
	}
	if err := db.insert.QueryRow(u.mail, u.name, int(role), u.created).Scan(&u.id); err != nil {
		return nil, err
	}
	return u, nil
}

func (db *UserDB) LoginUser(mail, password string) (core.DBUser, error) {
	u, err := scanUser(db.getByMail.QueryRow(clean(mail)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAuth
		}
		return nil, err
	}
	if u.hash(password) != u.pass {
		return nil, ErrAuth
	}
	return u, nil
}

func (db *UserDB) SetBio(u core.DBUser, bio string) error {
	if _, err := db.setBio.Exec(bio, u.ID()); err != nil {
		return err
	}
	u.(*user).bio = bio
	return nil
}

func (db *UserDB) SetPassword(u core.DBUser, password string) error {

	if u.ID() == 0 {
		return errors.New("user has no id")
	}
	if password == "" {
		return core.ErrEmptyPassword
	}

	salt, err := util.RandomString32()
	if err != nil {
		return err
	}

	var pass = hash(salt, password)

	if _, err := db.setPassword.Exec(salt, pass, u.ID()); err != nil {
		return err
	}

	u.(*user).salt = salt
	u.(*user).pass = pass
	return nil
}
