package db

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lisanmuaddib/trendgraph/pkg/db/models"
	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
)

const seedBatchSize = 500

// ImportSnapshot loads a graph snapshot into the relational tables in one
// transaction. Rows that already exist are left untouched, so importing the
// same snapshot twice is a no-op.
func ImportSnapshot(ctx context.Context, logger *logrus.Logger, db *gorm.DB, snap memgraph.Snapshot) error {
	log := logger.WithField("method", "ImportSnapshot")

	trends := make([]models.Trend, len(snap.Trends))
	for i, t := range snap.Trends {
		trends[i] = models.Trend{ID: t.ID, URL: t.URL, Name: t.Name, Location: t.Location, Date: t.Date}
	}
	users := make([]models.User, len(snap.Users))
	for i, u := range snap.Users {
		users[i] = models.User{ID: u.ID, Username: u.Username, Followers: u.Followers, Following: u.Following, Verified: u.Verified}
	}

	tweets := make([]models.Tweet, len(snap.Tweets))
	var edges []models.TweetComment
	parentSet := make(map[string]struct{})
	for i, t := range snap.Tweets {
		tweets[i] = models.Tweet{
			ID:        t.ID,
			URL:       t.URL,
			Username:  t.Username,
			Text:      t.Text,
			Sentiment: t.Sentiment,
			Retweets:  t.Retweets,
			Likes:     t.Likes,
			Shares:    t.Shares,
			UserID:    t.UserID,
			TrendID:   t.TrendID,
		}
		for _, parentID := range t.CommentOf {
			if parentID == t.ID {
				return fmt.Errorf("tweet %s cannot comment on itself", t.ID)
			}
			edges = append(edges, models.TweetComment{CommentID: t.ID, ParentID: parentID})
			parentSet[parentID] = struct{}{}
		}
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true})

		if len(trends) > 0 {
			if err := insert.CreateInBatches(trends, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert trends: %w", err)
			}
		}
		if len(users) > 0 {
			if err := insert.CreateInBatches(users, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert users: %w", err)
			}
		}
		if len(tweets) > 0 {
			if err := insert.CreateInBatches(tweets, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert tweets: %w", err)
			}
		}
		if len(edges) == 0 {
			return nil
		}

		if err := checkParents(tx, parentSet); err != nil {
			return err
		}
		if err := insert.CreateInBatches(edges, seedBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert comment edges: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"trends":   len(trends),
		"users":    len(users),
		"tweets":   len(tweets),
		"comments": len(edges),
	}).Info("Snapshot imported")
	return nil
}

// checkParents reports the first commented-on tweet that is missing from the
// tweets table, so a dangling edge names its id instead of a constraint.
func checkParents(tx *gorm.DB, parentSet map[string]struct{}) error {
	ids := make([]string, 0, len(parentSet))
	for id := range parentSet {
		ids = append(ids, id)
	}

	var found []string
	err := tx.Model(&models.Tweet{}).
		Where("id = ANY(?)", pq.Array(ids)).
		Pluck("id", &found).Error
	if err != nil {
		return fmt.Errorf("failed to check comment parents: %w", err)
	}
	if len(found) == len(ids) {
		return nil
	}

	present := make(map[string]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	for _, id := range ids {
		if !present[id] {
			return fmt.Errorf("unknown parent tweet %s", id)
		}
	}
	return nil
}
