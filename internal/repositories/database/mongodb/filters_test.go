package mongodb

import (
	"testing"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestWindowOverlap_MatchesThreeRules(t *testing.T) {
	week := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}
	rules := windowOverlap(week)
	require.Len(t, rules, 3)

	assert.Equal(t, bson.M{"startDate": bson.M{"$gte": week.Start, "$lte": week.End}}, rules[0])
	assert.Equal(t, bson.M{"endDate": bson.M{"$gte": week.Start, "$lte": week.End}}, rules[1])
	assert.Equal(t, bson.M{"startDate": bson.M{"$lte": week.Start}, "endDate": bson.M{"$gte": week.End}}, rules[2])
}

func TestWeekStatusFilter(t *testing.T) {
	user := bson.NewObjectID()
	week := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}

	filter := weekStatusFilter(user, week, domain.TransitionSources(domain.TimesheetRejected))

	assert.Equal(t, user, filter["user_id"])
	assert.Equal(t, bson.M{"$in": bson.A{"approved", "rejected", "submitted"}}, filter["status"])
	assert.Len(t, filter["$or"], 3)

	// The weekly read filter carries no status constraint.
	_, hasStatus := weeklyFilter(user, week)["status"]
	assert.False(t, hasStatus)
}

func TestWeekStatusFilter_SkippedSiblings(t *testing.T) {
	user := bson.NewObjectID()
	week := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-07")}

	tests := []struct {
		target    domain.TimesheetStatus
		touched   []string
		untouched []string
	}{
		{
			target:    domain.TimesheetRejected,
			touched:   []string{"approved", "rejected", "submitted"},
			untouched: []string{"in_progress"},
		},
		{
			target:    domain.TimesheetApproved,
			touched:   []string{"approved", "rejected", "submitted"},
			untouched: []string{"in_progress"},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			in := weekStatusFilter(user, week, domain.TransitionSources(tt.target))["status"].(bson.M)["$in"].(bson.A)
			assert.ElementsMatch(t, tt.touched, in)
			for _, status := range tt.untouched {
				assert.NotContains(t, in, status)
			}
		})
	}
}

func TestPastDueFilter(t *testing.T) {
	before := day("2024-12-08")
	statuses := []domain.TimesheetStatus{domain.TimesheetInProgress, domain.TimesheetRejected}

	tests := []struct {
		name     string
		user     *bson.ObjectID
		wantUser bool
	}{
		{"every user", nil, false},
		{"one user", func() *bson.ObjectID { id := bson.NewObjectID(); return &id }(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := pastDueFilter(tt.user, before, statuses)
			assert.Equal(t, bson.M{"$lt": before}, filter["endDate"])
			assert.Equal(t, bson.M{"$in": bson.A{"in_progress", "rejected"}}, filter["status"])
			_, ok := filter["user_id"]
			assert.Equal(t, tt.wantUser, ok)
		})
	}
}

func TestReportMatch(t *testing.T) {
	r := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-31")}
	project := bson.NewObjectID()
	user := bson.NewObjectID()

	tests := []struct {
		name     string
		projects []bson.ObjectID
		users    []bson.ObjectID
		wantKeys []string
	}{
		{"range only", nil, nil, []string{"endDate"}},
		{"projects", []bson.ObjectID{project}, nil, []string{"endDate", "project_id"}},
		{"projects and users", []bson.ObjectID{project}, []bson.ObjectID{user}, []string{"endDate", "project_id", "user_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := reportMatch(r, tt.projects, tt.users)
			keys := make([]string, 0, len(match))
			for k := range match {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.wantKeys, keys)
			assert.Equal(t, bson.M{"$gte": r.Start, "$lte": r.End}, match["endDate"])
		})
	}
}

func TestUserProjectHoursPipeline_Stages(t *testing.T) {
	p := userProjectHoursPipeline(bson.M{})
	assert.Equal(t,
		[]string{"$match", "$unwind", "$lookup", "$unwind", "$group", "$lookup", "$lookup", "$project", "$sort"},
		stageNames(p))

	unwind := p[1][0].Value.(bson.M)
	assert.Equal(t, "$data_sheet", unwind["path"])
	assert.Equal(t, true, unwind["preserveNullAndEmptyArrays"])

	group := p[4][0].Value.(bson.M)
	assert.Equal(t, bson.M{"user_id": "$user_id", "project_id": "$project_id"}, group["_id"])
	assert.Equal(t, bson.M{"$sum": hoursExpr}, group["loggedHours"])
	assert.Equal(t, bson.M{"$sum": approvedHoursExpr}, group["approvedHours"])
}

func TestApprovedHoursExpr_OnlyCountsApproved(t *testing.T) {
	cond := approvedHoursExpr["$cond"].(bson.A)
	require.Len(t, cond, 3)
	assert.Equal(t, bson.M{"$eq": bson.A{"$status", "approved"}}, cond[0])
	assert.Equal(t, hoursExpr, cond[1])
}

func TestStatusCountPipeline(t *testing.T) {
	user := bson.NewObjectID()
	r := domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-31")}
	p := statusCountPipeline(user, r)

	assert.Equal(t, []string{"$match", "$group", "$project", "$sort"}, stageNames(p))
	match := p[0][0].Value.(bson.M)
	assert.Equal(t, user, match["user_id"])
	group := p[1][0].Value.(bson.M)
	assert.Equal(t, "$status", group["_id"])
}

func TestExpandedTeamPagePipeline_PagesBeforeJoin(t *testing.T) {
	p := expandedTeamPagePipeline(bson.NewObjectID(), 10, 20)
	assert.Equal(t, []string{"$match", "$unwind", "$skip", "$limit", "$lookup", "$unwind", "$project"}, stageNames(p))
	assert.Equal(t, int64(20), p[2][0].Value)
	assert.Equal(t, int64(10), p[3][0].Value)
}

func TestStatusReportsPipeline(t *testing.T) {
	paged := statusReportsPipeline(bson.M{}, 5, 10)
	assert.Equal(t, []string{"$match", "$sort", "$skip", "$limit", "$lookup", "$lookup", "$addFields", "$project"}, stageNames(paged))

	single := statusReportsPipeline(bson.M{"_id": bson.NewObjectID()}, 0, 0)
	assert.Equal(t, []string{"$match", "$sort", "$lookup", "$lookup", "$addFields", "$project"}, stageNames(single))
}

func TestProjectListFilter(t *testing.T) {
	assert.Empty(t, projectListFilter(domain.ProjectFilter{}))

	filter := projectListFilter(domain.ProjectFilter{Status: "In Progress", ClientName: "a.b (c)"})
	assert.Equal(t, "In Progress", filter["status"])
	assert.Equal(t, bson.Regex{Pattern: `a\.b \(c\)`, Options: "i"}, filter["clientName"])
	_, ok := filter["projectName"]
	assert.False(t, ok)
}
