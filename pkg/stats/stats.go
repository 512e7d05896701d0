// Package stats summarises a participant's stored role assignments.
package stats

import (
	"math"
	"time"

	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/roles"
)

const dateLayout = "2006-01-02"

// Entry is one role held in a meeting
type Entry struct {
	Role          string
	ScheduledTime time.Time
}

// Window returns the [now-days, now] period covered by a report
func Window(now time.Time, days int) (start, end time.Time) {
	return now.AddDate(0, 0, -days), now
}

// Statistics groups entries by role and by calendar day of now's location.
// Entries outside the window are ignored; every day of the window appears
// in the breakdown, including empty ones.
func Statistics(p models.Participant, entries []Entry, days int, now time.Time) models.ParticipantStatistics {
	start, end := Window(now, days)
	loc := now.Location()

	res := models.ParticipantStatistics{
		ParticipantID:    p.ID,
		ParticipantName:  p.Name,
		PeriodDays:       days,
		StartDate:        start,
		EndDate:          end,
		RoleDistribution: map[string]int{},
	}

	daily := map[string]map[string]int{}
	for _, e := range entries {
		if e.ScheduledTime.Before(start) || e.ScheduledTime.After(end) {
			continue
		}
		res.TotalMeetings++
		res.RoleDistribution[e.Role]++

		day := e.ScheduledTime.In(loc).Format(dateLayout)
		if daily[day] == nil {
			daily[day] = map[string]int{}
		}
		daily[day][e.Role]++
	}

	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		counts := daily[key]
		if counts == nil {
			counts = map[string]int{}
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		res.DailyBreakdown = append(res.DailyBreakdown, models.DailyRoleBreakdown{
			Date:  key,
			Roles: counts,
			Total: total,
		})
	}
	res.RoleBalance = RoleBalance(res.RoleDistribution)
	return res
}

// RoleBalance returns a percentage (0-100) representing how evenly roles are
// spread over all seven roles. 100% is perfectly even (standard deviation 0),
// and so is holding no role at all.
func RoleBalance(distribution map[string]int) float64 {
	var sum float64
	for _, r := range roles.All {
		sum += float64(distribution[string(r)])
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(roles.All))

	var varianceSum float64
	for _, r := range roles.All {
		diff := float64(distribution[string(r)]) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(roles.All)))

	// 0% once the deviation reaches the mean
	score := (1.0 - stdDev/mean) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
