package seed

import "github.com/tinoosan/ncnews/internal/news"

// Default returns the development fixtures: 2 topics, 3 users, 4 articles
// with two comments each.
func Default() Data {
	return Data{
		Topics: []news.Topic{
			{Title: "Mitch", Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Title: "Cats", Slug: "cats", Description: "Not dogs"},
		},
		Users: []news.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"},
			{Username: "icellusedkars", Name: "sam", AvatarURL: "https://avatars2.githubusercontent.com/u/24604688?s=460&v=4"},
			{Username: "rogersop", Name: "paul", AvatarURL: "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"},
		},
		Articles: []ArticleFixture{
			{
				Title:     "Living in the shadow of a great man",
				Body:      "I find this existence challenging",
				Topic:     "mitch",
				CreatedBy: "butter_bridge",
				Votes:     100,
				Comments: []CommentFixture{
					{Body: "Oh, I've got compassion running out of my nose, pal! I'm the Sultan of Sentiment!", CreatedBy: "butter_bridge", Votes: 16},
					{Body: "The beautiful thing about treasure is that it exists.", CreatedBy: "icellusedkars", Votes: 14},
				},
			},
			{
				Title:     "7 inspirational thought leaders from Manchester UK",
				Body:      "Who are we kidding, there is only one, and it's Mitch!",
				Topic:     "mitch",
				CreatedBy: "rogersop",
				Comments: []CommentFixture{
					{Body: "Replacing the quiet elegance of the dark suit and tie with the casual indifference of these muted earth tones.", CreatedBy: "icellusedkars"},
					{Body: "I hate streaming noses", CreatedBy: "rogersop"},
				},
			},
			{
				Title:     "UNCOVERED: catspiracy to bring down democracy",
				Body:      "Bastet walks amongst us, and the cats are taking arms!",
				Topic:     "cats",
				CreatedBy: "rogersop",
				Comments: []CommentFixture{
					{Body: "I hate streaming eyes even more", CreatedBy: "butter_bridge"},
					{Body: "Lobster pot", CreatedBy: "icellusedkars", Votes: 1},
				},
			},
			{
				Title:     "They're not exactly dogs, are they?",
				Body:      "Well? Think about it.",
				Topic:     "mitch",
				CreatedBy: "butter_bridge",
				Comments: []CommentFixture{
					{Body: "Delicious crackerbreads", CreatedBy: "icellusedkars"},
					{Body: "Superficially charming", CreatedBy: "butter_bridge"},
				},
			},
		},
	}
}
