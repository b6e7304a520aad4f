package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	leetcli "github.com/leetcli/leetcli/internal"
)

const profileQuery = `
query getUserProfile($username: String!) {
    matchedUser(username: $username) {
        username
        profile {
            realName
            userAvatar
            countryName
            ranking
            reputation
        }
        submitStats {
            acSubmissionNum {
                difficulty
                count
            }
        }
    }
}`

const calendarQuery = `
query userProfileCalendar($username: String!) {
    matchedUser(username: $username) {
        userCalendar {
            submissionCalendar
        }
    }
}`

const recentQuery = `
query recentSubmissions($username: String!, $limit: Int) {
    recentSubmissionList(username: $username, limit: $limit) {
        title
        titleSlug
        timestamp
        statusDisplay
        lang
    }
}`

// FetchProfile aggregates a user's profile, submission calendar, and recent
// submissions. The three queries run concurrently; the profile query is
// authoritative, so its failure fails the fetch, while calendar and recent
// lists degrade to empty on their own errors.
func (c *Client) FetchProfile(ctx context.Context, username string) (*leetcli.Profile, error) {
	vars := map[string]any{"username": username}

	var profile *leetcli.Profile
	var calendar map[string]int
	var recent []leetcli.RecentActivity

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := c.graphql(gctx, "profile", profileQuery, vars)
		if err != nil {
			return err
		}
		u := res.Get("data.matchedUser")
		if !u.Exists() || u.Type == gjson.Null {
			return fmt.Errorf("user %q: %w", username, leetcli.ErrNotFound)
		}
		profile = profileFromJSON(u)
		return nil
	})

	g.Go(func() error {
		res, err := c.graphql(gctx, "calendar", calendarQuery, vars)
		if err != nil {
			return nil // optional enrichment
		}
		raw := res.Get("data.matchedUser.userCalendar.submissionCalendar").String()
		var cal map[string]int
		if json.Unmarshal([]byte(raw), &cal) == nil {
			calendar = cal
		}
		return nil
	})

	g.Go(func() error {
		vars := map[string]any{"username": username, "limit": 20}
		res, err := c.graphql(gctx, "recent", recentQuery, vars)
		if err != nil {
			return nil // optional enrichment
		}
		for _, s := range res.Get("data.recentSubmissionList").Array() {
			recent = append(recent, leetcli.RecentActivity{
				Title:     s.Get("title").String(),
				TitleSlug: s.Get("titleSlug").String(),
				Status:    s.Get("statusDisplay").String(),
				Lang:      s.Get("lang").String(),
				Timestamp: s.Get("timestamp").Int(),
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile.Calendar = calendar
	profile.Recent = recent
	return profile, nil
}

func profileFromJSON(u gjson.Result) *leetcli.Profile {
	p := &leetcli.Profile{
		Username:   u.Get("username").String(),
		RealName:   u.Get("profile.realName").String(),
		AvatarURL:  u.Get("profile.userAvatar").String(),
		Country:    u.Get("profile.countryName").String(),
		Ranking:    int(u.Get("profile.ranking").Int()),
		Reputation: int(u.Get("profile.reputation").Int()),
	}
	for _, n := range u.Get("submitStats.acSubmissionNum").Array() {
		count := int(n.Get("count").Int())
		switch n.Get("difficulty").String() {
		case "All":
			p.SolvedTotal = count
		case "Easy":
			p.SolvedEasy = count
		case "Medium":
			p.SolvedMedium = count
		case "Hard":
			p.SolvedHard = count
		}
	}
	return p
}
