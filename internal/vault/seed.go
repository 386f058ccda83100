package vault

import "time"

// Seed returns the built-in sample resources used when no persisted snapshot
// exists, so a first run is never empty.
func Seed() []Resource {
	now := time.Now().UnixMilli()
	return []Resource{
		{
			ID:         "seed-1",
			Title:      "Understanding React Server Components",
			URL:        "https://react.dev",
			Type:       TypeArticle,
			Platform:   "Official Docs",
			Summary:    "How RSC shifts data fetching to the server and what that means for bundle size in modern web apps.",
			UserNotes:  "Key point: rendering on the server keeps component code out of the client bundle.",
			Tags:       []string{"React", "frontend", "performance"},
			CreatedAt:  now,
			ContentRaw: "React Server Components allow developers to write components that run exclusively on the server.",
		},
		{
			ID:         "seed-2",
			Title:      "The Future of AI Agents",
			URL:        "https://twitter.com",
			Type:       TypeTweet,
			Platform:   "X",
			Summary:    "Argues that autonomous agents will replace traditional SaaS workflows as the next application form factor.",
			UserNotes:  "",
			Tags:       []string{"AI", "agents"},
			CreatedAt:  now - 100000,
			ContentRaw: "Agents are the new apps.",
		},
	}
}
