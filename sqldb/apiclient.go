package sqldb

import (
	"database/sql"
	"time"

	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/util"
)

type apiClient struct {
	id       int
	name     string
	key      string
	user     int
	active   bool
	created  int64
	lastUsed int64
}

func (c *apiClient) ID() int         { return c.id }
func (c *apiClient) Name() string    { return c.name }
func (c *apiClient) Key() string     { return c.key }
func (c *apiClient) UserID() int     { return c.user }
func (c *apiClient) Active() bool    { return c.active }
func (c *apiClient) Created() int64  { return c.created }
func (c *apiClient) LastUsed() int64 { return c.lastUsed }

const apiClientColumns = "id, name, api_key, usr, active, created, last_used"

func scanApiClient(row interface{ Scan(...interface{}) error }) (*apiClient, error) {
	var c = &apiClient{}
	if err := row.Scan(&c.id, &c.name, &c.key, &c.user, &c.active, &c.created, &c.lastUsed); err != nil {
		return nil, err
	}
	return c, nil
}

type ApiClientDB struct {
	*sql.DB
	getByKey  *sql.Stmt
	getByUser *sql.Stmt
	insert    *sql.Stmt
	setActive *sql.Stmt
	touch     *sql.Stmt
}

func NewApiClientDB(db *sql.DB) *ApiClientDB {

	db.Exec(`
		CREATE TABLE IF NOT EXISTS api_client (
			id ` + serial() + `,
			name varchar(100) NOT NULL,
			api_key varchar(64) NOT NULL,
			usr integer NOT NULL,
			active boolean NOT NULL DEFAULT TRUE,
			created bigint NOT NULL,
			last_used bigint NOT NULL DEFAULT 0,
			UNIQUE(api_key)
		);`)

	var apiClientDB = &ApiClientDB{}
	apiClientDB.DB = db
	apiClientDB.getByKey = mustPrepare(db, "SELECT "+apiClientColumns+" FROM api_client WHERE api_key = ? LIMIT 1")
	apiClientDB.getByUser = mustPrepare(db, "SELECT "+apiClientColumns+" FROM api_client WHERE usr = ? ORDER BY id")
	apiClientDB.insert = mustPrepare(db, "INSERT INTO api_client (name, api_key, usr, active, created) VALUES (?, ?, ?, TRUE, ?) RETURNING id")
	apiClientDB.setActive = mustPrepare(db, "UPDATE api_client SET active = ? WHERE id = ?")
	apiClientDB.touch = mustPrepare(db, "UPDATE api_client SET last_used = ? WHERE id = ?")
	return apiClientDB
}

func (db *ApiClientDB) GetClientByKey(key string) (core.DBApiClient, error) {
	return scanApiClient(db.getByKey.QueryRow(key))
}

func (db *ApiClientDB) GetClients(userID int) ([]core.DBApiClient, error) {

	rows, err := db.getByUser.Query(userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []core.DBApiClient
	for rows.Next() {
		c, err := scanApiClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (db *ApiClientDB) InsertClient(name string, userID int) (core.DBApiClient, error) {

	key, err := util.RandomString64()
	if err != nil {
		return nil, err
	}

	var c = &apiClient{
		name:    name,
		key:     key,
		user:    userID,
		active:  true,
		created: time.Now().Unix(),
	}
	if err := db.insert.QueryRow(c.name, c.key, c.user, c.created).Scan(&c.id); err != nil {
		return nil, err
	}
	return c, nil
}

func (db *ApiClientDB) SetClientActive(c core.DBApiClient, active bool) error {
	if _, err := db.setActive.Exec(active, c.ID()); err != nil {
		return err
	}
	c.(*apiClient).active = active
	return nil
}

func (db *ApiClientDB) TouchClient(c core.DBApiClient, lastUsed int64) error {
	if _, err := db.touch.Exec(lastUsed, c.ID()); err != nil {
		return err
	}
	c.(*apiClient).lastUsed = lastUsed
	return nil
}
