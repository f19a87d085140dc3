package core

// Feed resolves the personalized feed of a reader: published articles whose
// publisher the reader subscribed to or whose author they follow, newest
// first, ties broken by ascending id.
func (g *Gazette) Feed(reader DBUser, limit, offset int) ([]DBArticle, error) {
	return g.ArticleDB.GetArticles(ArticleFilter{Status: Published, ReaderID: reader.ID()}, PublishedDesc, limit, offset)
}

// CountFeed returns the number of entries in the feed of a reader.
func (g *Gazette) CountFeed(reader DBUser) (int, error) {
	return g.ArticleDB.CountArticles(ArticleFilter{Status: Published, ReaderID: reader.ID()})
}

// FeedSince returns the feed entries published after the given time.
// The digest job uses it to collect what a reader has missed.
func (g *Gazette) FeedSince(reader DBUser, since int64, limit int) ([]DBArticle, error) {
	return g.ArticleDB.GetArticles(ArticleFilter{Status: Published, ReaderID: reader.ID(), PublishedAfter: since}, PublishedDesc, limit, 0)
}
