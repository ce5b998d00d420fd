package graphdb

// Node ids live in the id_mongo property, the key the graph was loaded with.
var cypherQueries = map[string]string{
	"trends": `
		MATCH (t:Trend)
		RETURN t.id_mongo AS id, t.url AS url, t.name AS name, t.location AS location, t.date AS date
	`,
	"users": `
		MATCH (u:User)
		RETURN u.id_mongo AS id, u.username AS username, u.followers AS followers,
		       u.following AS following, u.verified AS verified
	`,
	"trend_by_key": `
		MATCH (t:Trend {name: $name, location: $location, date: $date})
		RETURN t.id_mongo AS id, t.url AS url, t.name AS name, t.location AS location, t.date AS date
		LIMIT 1
	`,
	"user_by_username": `
		MATCH (u:User {username: $username})
		RETURN u.id_mongo AS id, u.username AS username, u.followers AS followers,
		       u.following AS following, u.verified AS verified
		LIMIT 1
	`,
	// tweets RELATED_TO the trend
	"trend_tweets": `
		MATCH (w:Tweet)-[:RELATED_TO]->(:Trend {id_mongo: $id})
		RETURN ` + tweetColumns,
	// tweets POSTED_BY the user
	"user_tweets": `
		MATCH (w:Tweet)-[:POSTED_BY]->(:User {id_mongo: $id})
		RETURN ` + tweetColumns,
	// comments pointing at the tweet
	"tweet_comments": `
		MATCH (w:Tweet)-[:COMMENTED_ON]->(:Tweet {id_mongo: $id})
		RETURN ` + tweetColumns,
	// tweets the comment points at
	"commented_on": `
		MATCH (:Tweet {id_mongo: $id})-[:COMMENTED_ON]->(w:Tweet)
		RETURN ` + tweetColumns,
	"tweet_author": `
		MATCH (:Tweet {id_mongo: $id})-[:POSTED_BY]->(u:User)
		RETURN u.id_mongo AS id, u.username AS username, u.followers AS followers,
		       u.following AS following, u.verified AS verified
		LIMIT 1
	`,
	"tweet_trend": `
		MATCH (:Tweet {id_mongo: $id})-[:RELATED_TO]->(t:Trend)
		RETURN t.id_mongo AS id, t.url AS url, t.name AS name, t.location AS location, t.date AS date
		LIMIT 1
	`,

	"merge_trends": `
		UNWIND $rows AS row
		MERGE (t:Trend {id_mongo: row.id})
		SET t.url = row.url, t.name = row.name, t.location = row.location, t.date = row.date
	`,
	"merge_users": `
		UNWIND $rows AS row
		MERGE (u:User {id_mongo: row.id})
		SET u.username = row.username, u.followers = row.followers,
		    u.following = row.following, u.verified = row.verified
	`,
	"merge_tweets": `
		UNWIND $rows AS row
		MATCH (u:User {id_mongo: row.user_id})
		MATCH (t:Trend {id_mongo: row.trend_id})
		MERGE (w:Tweet {id_mongo: row.id})
		SET w.url = row.url, w.username = row.username, w.text = row.text,
		    w.sentiment = row.sentiment, w.retweets = row.retweets,
		    w.likes = row.likes, w.shares = row.shares
		MERGE (w)-[:POSTED_BY]->(u)
		MERGE (w)-[:RELATED_TO]->(t)
		RETURN count(w) AS merged
	`,
	"merge_comments": `
		UNWIND $rows AS row
		MATCH (c:Tweet {id_mongo: row.comment_id})
		MATCH (p:Tweet {id_mongo: row.parent_id})
		MERGE (c)-[:COMMENTED_ON]->(p)
		RETURN count(p) AS merged
	`,
}

const tweetColumns = `w.id_mongo AS id, w.url AS url, w.username AS username, w.text AS text,
		       w.sentiment AS sentiment, w.retweets AS retweets, w.likes AS likes, w.shares AS shares
	`
