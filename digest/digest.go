// Package digest mails readers a periodic summary of what their
// subscriptions and follows published since the previous run.
package digest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/logger"
	"github.com/wansing/gazette/metrics"
)

const maxArticles = 50 // per reader and run

// A Job runs on a cron schedule. It keeps the timestamp of its previous
// run in memory, so after a restart the first digest covers the time since
// the start, not the whole history.
type Job struct {
	gz   *core.Gazette
	cron *cron.Cron

	mu    sync.Mutex
	since int64
}

func New(gz *core.Gazette) *Job {
	return &Job{
		gz: gz,
	}
}

// Start schedules the job. An empty schedule or a missing mailer disables it.
func (job *Job) Start() error {

	var schedule = job.gz.Config.Digest.Schedule
	if schedule == "" {
		logger.Log.Info("digest job is disabled")
		return nil
	}
	if job.gz.Mailer == nil {
		logger.Log.Warn("digest job requires mail delivery, disabling it")
		return nil
	}

	job.since = time.Now().Unix()
	job.cron = cron.New()
	if _, err := job.cron.AddFunc(schedule, job.Run); err != nil {
		return fmt.Errorf("scheduling digest job: %w", err)
	}
	job.cron.Start()

	logger.Log.WithField("schedule", schedule).Info("digest job scheduled")
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (job *Job) Stop() {
	if job.cron != nil {
		<-job.cron.Stop().Done()
	}
}

// Run sends one mail per active reader, skipping readers whose feed got
// nothing new. Failures are logged, there are no retries.
func (job *Job) Run() {

	job.mu.Lock()
	var since = job.since
	job.since = time.Now().Unix()
	job.mu.Unlock()

	readers, err := job.gz.SubscriptionDB.GetActiveReaders()
	if err != nil {
		logger.Log.Warnf("digest: resolving readers: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var sent, failed int
	for _, reader := range readers {

		articles, err := job.gz.FeedSince(reader, since, maxArticles)
		if err != nil {
			logger.Log.WithField("reader", reader.ID()).Warnf("digest: resolving feed: %v", err)
			failed++
			continue
		}
		if len(articles) == 0 {
			continue
		}

		var subject = fmt.Sprintf("%s Digest: %d new articles for you", job.gz.Config.SiteName, len(articles))
		failedAddrs, err := job.gz.Mailer.SendEach(ctx, []string{reader.Mail()}, subject, job.body(reader, articles))
		if err != nil || len(failedAddrs) > 0 {
			logger.Log.WithField("reader", reader.ID()).Warnf("digest: sending mail: %v", err)
			metrics.MailFailures.Inc()
			failed++
			continue
		}
		metrics.MailsSent.Inc()
		sent++
	}

	metrics.DigestRuns.Inc()
	logger.Log.WithFields(logger.Fields{"readers": len(readers), "sent": sent, "failed": failed}).Info("digest run finished")
}

func (job *Job) body(reader core.DBUser, articles []core.DBArticle) string {

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello %s,\n\nhere is what your subscriptions published since the last digest:\n\n", reader.Name())

	for _, a := range articles {
		fmt.Fprintf(&sb, "- %s\n  %s/article/%s\n", a.Title(), job.gz.Config.SiteURL, a.Slug())
	}

	fmt.Fprintf(&sb, "\nBest regards,\n%s", job.gz.Config.SiteName)
	return sb.String()
}
