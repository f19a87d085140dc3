package main

import (
	"bytes"
	"database/sql"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wansing/gazette/api"
	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/digest"
	"github.com/wansing/gazette/logger"
	"github.com/wansing/gazette/mail"
	"github.com/wansing/gazette/metrics"
	"github.com/wansing/gazette/social"
	"github.com/wansing/gazette/sqldb"
	"github.com/wansing/gazette/sqldb/postgres"
	"github.com/wansing/gazette/sqldb/sqlite3"
	"github.com/wansing/gazette/util"
	"github.com/wansing/gazette/web"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
)

const defaultDB = "sqlite3:gazette.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared"

func main() {

	logger.Init()

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
	var configPath = flag.String("config", "config/gazette.ini", "read the configuration from this `file`")
	flag.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl") // copied from above
	var initInsert = initFlags.Bool("insert", false, "creates the given user or publisher")
	var initJoin = initFlags.Bool("join", false, "adds the given user to the staff of the given publisher")
	var userMail = initFlags.String("user", "", "specifies a user by `mail` address")
	var name = initFlags.String("name", "", "display `name` of a new user")
	var role = initFlags.String("role", "reader", "`role` of a new user: reader, journalist or editor")
	var publisherName = initFlags.String("publisher", "", "specifies a publisher by `name`")
	var description = initFlags.String("description", "", "description of a new publisher")
	var website = initFlags.String("website", "", "website `url` of a new publisher")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// configuration

	config, err := core.LoadConfig(*configPath)
	if err != nil {
		logger.Log.Warnf("could not read config file: %v", err)
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		logger.Log.Errorf("could not parse database url: %v", err)
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		logger.Log.Errorf("could not open sql database: %v", err)
		return
	}

	if err = sqlDB.Ping(); err != nil {
		logger.Log.Errorf("could not ping sql database: %v", err)
		return
	}

	logger.Log.WithField("database", dbURL.String()).Info("database connected")

	sqldb.Driver = dbURL.Driver

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "pgx", "postgres":
		sessionStore = postgres.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		logger.Log.Errorf("unknown database backend: %s", dbURL.Driver)
		return
	}

	gz := &core.Gazette{}
	gz.Init(sessionStore, *base)

	gz.ApiClientDB = sqldb.NewApiClientDB(sqlDB)
	gz.ArticleDB = sqldb.NewArticleDB(sqlDB)
	gz.NewsletterDB = sqldb.NewNewsletterDB(sqlDB)
	gz.PublisherDB = sqldb.NewPublisherDB(sqlDB)
	gz.SubscriptionDB = sqldb.NewSubscriptionDB(sqlDB)
	gz.UserDB = sqldb.NewUserDB(sqlDB)

	gz.Config = config
	gz.SqlDB = sqlDB

	if config.Mail.Host != "" {
		gz.Mailer = mail.NewMailer(config.Mail)
	}
	if config.Social.Token != "" {
		gz.Social = social.NewClient(config.Social)
	}

	defer func() {
		logger.Log.Info("closing database")
		sqlDB.Close()
	}()

	// init

	if initFlags.Parsed() {
		switch {
		case *initInsert:
			if *userMail != "" {
				insertUser(gz, *userMail, *name, *role)
			}
			if *publisherName != "" {
				insertPublisher(gz, *publisherName, *description, *website)
			}
		case *initJoin:
			if *userMail != "" && *publisherName != "" {
				join(gz, *userMail, *publisherName)
			}
		}
		return
	}

	listen(gz, *listenAddr, *base)
}

func insertUser(gz *core.Gazette, mail, name, roleArg string) {

	role, err := core.ParseRole(roleArg)
	if err != nil {
		logger.Log.Error(err)
		return
	}

	fmt.Printf("password for user %s: ", mail)
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		logger.Log.Errorf("error reading password: %v", err)
		return
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		logger.Log.Errorf("error reading password: %v", err)
		return
	}

	if !bytes.Equal(pass1, pass2) {
		logger.Log.Error("passwords don't match")
		return
	}

	if _, err := gz.Register(mail, name, string(pass1), role); err != nil {
		logger.Log.Errorf("error creating user %s: %v", mail, err)
		return
	}

	logger.Log.WithFields(logger.Fields{"mail": mail, "role": role.String()}).Info("user created")
}

func insertPublisher(gz *core.Gazette, name, description, website string) {
	if _, err := gz.InsertPublisher(name, description, website); err != nil {
		logger.Log.Errorf("error creating publisher %s: %v", name, err)
		return
	}
	logger.Log.WithField("publisher", name).Info("publisher created")
}

func join(gz *core.Gazette, mail, publisherName string) {

	user, err := gz.UserDB.GetUserByMail(mail)
	if err != nil {
		logger.Log.Errorf("error getting user %s: %v", mail, err)
		return
	}

	publisher, err := gz.PublisherDB.GetPublisherByName(publisherName)
	if err != nil {
		logger.Log.Errorf("error getting publisher %s: %v", publisherName, err)
		return
	}

	if err := gz.AddStaff(publisher, user); err != nil {
		logger.Log.Errorf("error joining: %v", err)
		return
	}

	logger.Log.WithFields(logger.Fields{"mail": mail, "publisher": publisherName}).Info("staff added")
}

func listen(gz *core.Gazette, addr string, base string) {

	// digest job

	digestJob := digest.New(gz)
	if err := digestJob.Start(); err != nil {
		logger.Log.Errorf("error starting digest job: %v", err)
		return
	}
	defer digestJob.Stop()

	// mux
	//
	// golang mux recovers from panics, so the program won't crash

	var mux = http.NewServeMux()
	util.HandlePrefix(mux, base+"/api", api.NewRouter(gz))
	util.HandlePrefix(mux, base+"/static", http.FileServer(http.Dir("static")))
	mux.Handle(base+"/metrics", promhttp.Handler())
	util.HandlePrefix(mux, base, web.NewRouter(gz, base))

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Log.Error(err)
		return
	}

	logger.Log.WithField("addr", addr).Info("listening")

	httpSrv := &http.Server{
		Handler:      gz.SessionManager.LoadAndSave(logger.Middleware(metrics.Middleware(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				logger.Log.Errorf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	logger.Log.Info("shutting down")
	httpSrv.Close()
}
