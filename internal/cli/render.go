package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	leetcli "github.com/leetcli/leetcli/internal"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderProfile(p *leetcli.Profile) {
	fmt.Printf("%s", p.Username)
	if p.RealName != "" {
		fmt.Printf(" (%s)", p.RealName)
	}
	fmt.Println()
	if p.Country != "" {
		fmt.Printf("Country:    %s\n", p.Country)
	}
	fmt.Printf("Ranking:    %d\n", p.Ranking)
	fmt.Printf("Reputation: %d\n", p.Reputation)
	fmt.Printf("Solved:     %d (easy %d / medium %d / hard %d)\n",
		p.SolvedTotal, p.SolvedEasy, p.SolvedMedium, p.SolvedHard)
	if len(p.Recent) > 0 {
		fmt.Println("\nRecent submissions:")
		for _, r := range p.Recent {
			ts := time.Unix(r.Timestamp, 0).Format("2006-01-02 15:04")
			fmt.Printf("  %-20s %-15s %-10s %s\n", ts, r.Status, r.Lang, r.Title)
		}
	}
}

func renderDaily(d *leetcli.DailyChallenge) {
	fmt.Printf("Daily challenge for %s\n\n", d.Date)
	renderProblem(&d.Problem)
	if d.Link != "" {
		fmt.Printf("Link:       %s\n", d.Link)
	}
	if d.UserStatus != "" {
		fmt.Printf("Status:     %s\n", d.UserStatus)
	}
}

func renderProblem(m *leetcli.ProblemMeta) {
	fmt.Printf("%s. %s\n", m.ID, m.Title)
	fmt.Printf("Difficulty: %s\n", m.Difficulty)
	if m.AcceptanceRate > 0 {
		fmt.Printf("Acceptance: %.1f%%\n", m.AcceptanceRate)
	}
	if m.PaidOnly {
		fmt.Println("Premium only")
	}
	if len(m.Tags) > 0 {
		fmt.Printf("Tags:       %s\n", strings.Join(m.Tags, ", "))
	}
}

func renderResult(r *leetcli.JobResult) {
	switch r.State {
	case leetcli.ResultAccepted:
		fmt.Println("Accepted")
		if r.Runtime != "" {
			fmt.Printf("Runtime: %s\n", r.Runtime)
		}
		if r.Memory != "" {
			fmt.Printf("Memory:  %s\n", r.Memory)
		}
		if r.TotalTestcases > 0 {
			fmt.Printf("Passed:  %d/%d test cases\n", r.TotalCorrect, r.TotalTestcases)
		}
	case leetcli.ResultRejected:
		fmt.Printf("Rejected: %s\n", r.Reason)
		if r.TotalTestcases > 0 {
			fmt.Printf("Passed:  %d/%d test cases\n", r.TotalCorrect, r.TotalTestcases)
		}
		if r.LastTestcase != "" {
			fmt.Printf("Failing input:\n%s\n", r.LastTestcase)
		}
		if r.CodeOutput != "" {
			fmt.Printf("Your output:     %s\n", r.CodeOutput)
		}
		if r.ExpectedOutput != "" {
			fmt.Printf("Expected output: %s\n", r.ExpectedOutput)
		}
	case leetcli.ResultRemoteTimedOut:
		fmt.Println("The judge reported a timeout for this job.")
	case leetcli.ResultLocalTimedOut:
		fmt.Println("Gave up waiting for the judge. The job may still finish remotely.")
	}
	if r.Kind == leetcli.JobTest && r.State == leetcli.ResultAccepted && r.CodeOutput != "" {
		fmt.Printf("Output:\n%s\n", r.CodeOutput)
	}
}

func renderSearchResults(matches []leetcli.ProblemMeta, query string) {
	if len(matches) == 0 {
		fmt.Printf("No problems matched %q.\n", query)
		return
	}
	for _, p := range matches {
		premium := ""
		if p.PaidOnly {
			premium = " [premium]"
		}
		fmt.Printf("%5s. %-50s %-8s %5.1f%%%s\n", p.ID, p.Title, p.Difficulty, p.AcceptanceRate, premium)
	}
}

func renderSubmissions(subs []leetcli.Submission) {
	if len(subs) == 0 {
		fmt.Println("No submissions matched.")
		return
	}
	for _, s := range subs {
		ts := time.Unix(s.Timestamp, 0).Format("2006-01-02 15:04")
		fmt.Printf("%-17s %-22s %-12s %s\n", ts, s.StatusDisplay, s.Lang, s.Title)
	}
}
