package graphql

// The query surface served over GraphQL. All post fields are nullable, the
// id exposed here is the source-native post id, never the storage key.
const gqlSchema = `
	schema {
		query: Query
	}

	type Query {
		posts(limit: Int, interweave: Boolean! = false): [Post!]!
		post(id: ID!): Post
		getDetailedPosts(id: String!, surroundingIds: [String!]!): DetailedPostResponse!
	}

	type Post {
		source: String
		sub: String
		id: String
		title: String
		text: String
		author: String
		upvotes: Int
		url: String
		publishedDate: String
		commentUrl: String
		commentHtml: String
	}

	type DetailedPostResponse {
		post: Post!
		surroundingPosts: [Post!]!
	}
`

func GetGQLSchema() string {
	return gqlSchema
}
