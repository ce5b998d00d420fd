// Package memgraph is an in-memory graph.Store built from adjacency lists
// keyed by node id. Relationship members keep insertion order.
package memgraph

import (
	"context"
	"fmt"
	"sync"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

type Store struct {
	mu     sync.RWMutex
	logger *logrus.Logger

	trendOrder []string
	userOrder  []string
	trends     map[string]graph.Trend
	users      map[string]graph.User
	tweets     map[string]graph.Tweet

	trendByKey     map[graph.TrendKey]string
	userByUsername map[string]string

	// outgoing edges
	postedBy    map[string]string   // tweet -> user
	relatedTo   map[string]string   // tweet -> trend
	commentedOn map[string][]string // comment -> parents

	// incoming edges
	trendTweets map[string][]string // trend -> tweets
	userTweets  map[string][]string // user -> tweets
	comments    map[string][]string // parent -> comments
}

var _ graph.Store = (*Store)(nil)

func New(logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		logger:         logger,
		trends:         make(map[string]graph.Trend),
		users:          make(map[string]graph.User),
		tweets:         make(map[string]graph.Tweet),
		trendByKey:     make(map[graph.TrendKey]string),
		userByUsername: make(map[string]string),
		postedBy:       make(map[string]string),
		relatedTo:      make(map[string]string),
		commentedOn:    make(map[string][]string),
		trendTweets:    make(map[string][]string),
		userTweets:     make(map[string][]string),
		comments:       make(map[string][]string),
	}
}

// AddTrend registers a trend node. Ids and composite keys must be unique.
func (s *Store) AddTrend(t graph.Trend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trends[t.ID]; exists {
		return fmt.Errorf("trend %s already exists", t.ID)
	}
	if _, exists := s.trendByKey[t.Key()]; exists {
		return fmt.Errorf("trend key %s already exists", t.Key())
	}

	s.trends[t.ID] = t
	s.trendByKey[t.Key()] = t.ID
	s.trendOrder = append(s.trendOrder, t.ID)
	return nil
}

// AddUser registers a user node. Ids and usernames must be unique.
func (s *Store) AddUser(u graph.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; exists {
		return fmt.Errorf("user %s already exists", u.ID)
	}
	if _, exists := s.userByUsername[u.Username]; exists {
		return fmt.Errorf("username %s already exists", u.Username)
	}

	s.users[u.ID] = u
	s.userByUsername[u.Username] = u.ID
	s.userOrder = append(s.userOrder, u.ID)
	return nil
}

// AddTweet registers a tweet together with its POSTED_BY and RELATED_TO edges.
func (s *Store) AddTweet(t graph.Tweet, userID, trendID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tweets[t.ID]; exists {
		return fmt.Errorf("tweet %s already exists", t.ID)
	}
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("tweet %s: unknown user %s", t.ID, userID)
	}
	if _, ok := s.trends[trendID]; !ok {
		return fmt.Errorf("tweet %s: unknown trend %s", t.ID, trendID)
	}

	s.tweets[t.ID] = t
	s.postedBy[t.ID] = userID
	s.relatedTo[t.ID] = trendID
	s.userTweets[userID] = append(s.userTweets[userID], t.ID)
	s.trendTweets[trendID] = append(s.trendTweets[trendID], t.ID)
	return nil
}

// AddComment records a COMMENTED_ON edge from commentID to parentID.
func (s *Store) AddComment(commentID, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tweets[commentID]; !ok {
		return fmt.Errorf("comment: unknown tweet %s", commentID)
	}
	if _, ok := s.tweets[parentID]; !ok {
		return fmt.Errorf("comment %s: unknown parent tweet %s", commentID, parentID)
	}
	if commentID == parentID {
		return fmt.Errorf("tweet %s cannot comment on itself", commentID)
	}

	s.commentedOn[commentID] = append(s.commentedOn[commentID], parentID)
	s.comments[parentID] = append(s.comments[parentID], commentID)
	return nil
}

func (s *Store) Trends(ctx context.Context) ([]graph.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trends := make([]graph.Trend, 0, len(s.trendOrder))
	for _, id := range s.trendOrder {
		trends = append(trends, s.trends[id])
	}
	return trends, nil
}

func (s *Store) Users(ctx context.Context) ([]graph.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users := make([]graph.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *Store) TrendByKey(ctx context.Context, key graph.TrendKey) (*graph.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, ok := s.trendByKey[key]
	if !ok {
		return nil, graph.MissingEntity("trend", key.String())
	}
	t := s.trends[id]
	return &t, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*graph.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, ok := s.userByUsername[username]
	if !ok {
		return nil, graph.MissingEntity("user", username)
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) TrendTweets(ctx context.Context, trendID string) ([]graph.Tweet, error) {
	return s.tweetList(ctx, s.trendTweets, trendID)
}

func (s *Store) UserTweets(ctx context.Context, userID string) ([]graph.Tweet, error) {
	return s.tweetList(ctx, s.userTweets, userID)
}

func (s *Store) TweetComments(ctx context.Context, tweetID string) ([]graph.Tweet, error) {
	return s.tweetList(ctx, s.comments, tweetID)
}

func (s *Store) CommentedOn(ctx context.Context, tweetID string) ([]graph.Tweet, error) {
	return s.tweetList(ctx, s.commentedOn, tweetID)
}

func (s *Store) TweetAuthor(ctx context.Context, tweetID string) (*graph.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID, ok := s.postedBy[tweetID]
	if !ok {
		return nil, graph.MissingEntity("author of tweet", tweetID)
	}
	u := s.users[userID]
	return &u, nil
}

func (s *Store) TweetTrend(ctx context.Context, tweetID string) (*graph.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trendID, ok := s.relatedTo[tweetID]
	if !ok {
		return nil, graph.MissingEntity("trend of tweet", tweetID)
	}
	t := s.trends[trendID]
	return &t, nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// Stats returns node counts, used for load logging.
func (s *Store) Stats() (trends, users, tweets int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trends), len(s.users), len(s.tweets)
}

func (s *Store) tweetList(ctx context.Context, edges map[string][]string, id string) ([]graph.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := edges[id]
	tweets := make([]graph.Tweet, 0, len(ids))
	for _, tweetID := range ids {
		tweets = append(tweets, s.tweets[tweetID])
	}
	return tweets, nil
}
