package core

import (
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Config holds everything read from the ini file. Secrets can be overridden
// with GAZETTE_* environment variables, so they don't have to live on disk.
type Config struct {
	SiteName string
	SiteURL  string // absolute, no trailing slash
	PerPage  int

	Mail   MailConfig
	Social SocialConfig
	Digest DigestConfig
}

type MailConfig struct {
	Host     string // empty disables mail delivery
	Port     int
	User     string
	Password string
	From     string
}

type SocialConfig struct {
	Endpoint string
	Token    string // empty disables social posting
}

type DigestConfig struct {
	Schedule string // cron expression, empty disables the digest job
}

// LoadConfig reads the ini file at the given path. A missing file yields
// the defaults.
func LoadConfig(path string) (Config, error) {

	var config = Config{
		SiteName: "Gazette",
		SiteURL:  "http://127.0.0.1:8080",
		PerPage:  12,
		Mail: MailConfig{
			Port: 587,
			From: "gazette@localhost",
		},
		Social: SocialConfig{
			Endpoint: "https://api.twitter.com/2/tweets",
		},
	}

	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return config, err
	}

	var site = cfg.Section("")
	config.SiteName = site.Key("name").MustString(config.SiteName)
	config.SiteURL = strings.TrimSuffix(site.Key("url").MustString(config.SiteURL), "/")
	config.PerPage = site.Key("per-page").MustInt(config.PerPage)

	var mail = cfg.Section("mail")
	config.Mail.Host = mail.Key("host").String()
	config.Mail.Port = mail.Key("port").MustInt(config.Mail.Port)
	config.Mail.User = mail.Key("user").String()
	config.Mail.Password = mail.Key("password").String()
	config.Mail.From = mail.Key("from").MustString(config.Mail.From)

	var social = cfg.Section("social")
	config.Social.Endpoint = social.Key("endpoint").MustString(config.Social.Endpoint)
	config.Social.Token = social.Key("token").String()

	config.Digest.Schedule = cfg.Section("digest").Key("schedule").String()

	if v := os.Getenv("GAZETTE_SITE_URL"); v != "" {
		config.SiteURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("GAZETTE_SMTP_PASSWORD"); v != "" {
		config.Mail.Password = v
	}
	if v := os.Getenv("GAZETTE_SOCIAL_TOKEN"); v != "" {
		config.Social.Token = v
	}

	return config, nil
}
