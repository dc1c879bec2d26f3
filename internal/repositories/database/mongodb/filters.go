package mongodb

import (
	"regexp"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func statusStrings(statuses []domain.TimesheetStatus) bson.A {
	out := bson.A{}
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// windowOverlap matches timesheets that start in week, end in week, or span it.
func windowOverlap(week domain.DateRange) bson.A {
	return bson.A{
		bson.M{"startDate": bson.M{"$gte": week.Start, "$lte": week.End}},
		bson.M{"endDate": bson.M{"$gte": week.Start, "$lte": week.End}},
		bson.M{"startDate": bson.M{"$lte": week.Start}, "endDate": bson.M{"$gte": week.End}},
	}
}

func weeklyFilter(userID bson.ObjectID, week domain.DateRange) bson.M {
	return bson.M{
		"user_id": userID,
		"$or":     windowOverlap(week),
	}
}

// weekStatusFilter selects the timesheets a bulk status change may touch.
func weekStatusFilter(userID bson.ObjectID, week domain.DateRange, from []domain.TimesheetStatus) bson.M {
	filter := weeklyFilter(userID, week)
	filter["status"] = bson.M{"$in": statusStrings(from)}
	return filter
}

func entryBetweenFilter(userID bson.ObjectID, from, to time.Time) bson.M {
	return bson.M{
		"user_id":         userID,
		"data_sheet.date": bson.M{"$gte": from, "$lte": to},
	}
}

func pastDueFilter(userID *bson.ObjectID, before time.Time, statuses []domain.TimesheetStatus) bson.M {
	filter := bson.M{
		"endDate": bson.M{"$lt": before},
		"status":  bson.M{"$in": statusStrings(statuses)},
	}
	if userID != nil {
		filter["user_id"] = *userID
	}
	return filter
}

// firstOr reads a field of the first element of a lookup array, defaulting when absent.
func firstOr(array, field string, def any) bson.M {
	return bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$" + array + "." + field, 0}}, def}}
}

func lookup(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": "_id",
		"as":           as,
	}}}
}

// timesheetsWithNamesPipeline matches timesheets and joins project and category names.
func timesheetsWithNamesPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "startDate", Value: -1}}}},
		lookup(projectsCollection, "project_id", "project"),
		lookup(categoriesCollection, "task_category_id", "category"),
		{{Key: "$addFields", Value: bson.M{
			"projectName":  firstOr("project", "projectName", ""),
			"categoryName": firstOr("category", "category", ""),
		}}},
		{{Key: "$project", Value: bson.M{"project": 0, "category": 0}}},
	}
}

// reportMatch selects timesheets by end date with optional project and user filters.
func reportMatch(r domain.DateRange, projectIDs, userIDs []bson.ObjectID) bson.M {
	match := bson.M{"endDate": bson.M{"$gte": r.Start, "$lte": r.End}}
	if len(projectIDs) > 0 {
		match["project_id"] = bson.M{"$in": projectIDs}
	}
	if len(userIDs) > 0 {
		match["user_id"] = bson.M{"$in": userIDs}
	}
	return match
}

// hoursExpr converts one unwound entry's hours to a decimal. Missing or malformed hours count as zero.
var hoursExpr = bson.M{"$convert": bson.M{
	"input":   "$data_sheet.hours",
	"to":      "decimal",
	"onError": bson.M{"$toDecimal": 0},
	"onNull":  bson.M{"$toDecimal": 0},
}}

var approvedHoursExpr = bson.M{"$cond": bson.A{
	bson.M{"$eq": bson.A{"$status", string(domain.TimesheetApproved)}},
	hoursExpr,
	bson.M{"$toDecimal": 0},
}}

func unwindDataSheet() bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{"path": "$data_sheet", "preserveNullAndEmptyArrays": true}}}
}

func unwindOptional(field string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.M{"path": "$" + field, "preserveNullAndEmptyArrays": true}}}
}

// userProjectHoursPipeline totals logged and approved hours per user and project.
func userProjectHoursPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		unwindDataSheet(),
		lookup(categoriesCollection, "task_category_id", "category"),
		unwindOptional("category"),
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"user_id": "$user_id", "project_id": "$project_id"},
			"loggedHours":   bson.M{"$sum": hoursExpr},
			"approvedHours": bson.M{"$sum": approvedHoursExpr},
			"categories":    bson.M{"$addToSet": "$category.category"},
		}}},
		lookup(projectsCollection, "_id.project_id", "project"),
		lookup(usersCollection, "_id.user_id", "user"),
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"user_id":       "$_id.user_id",
			"project_id":    "$_id.project_id",
			"userName":      firstOr("user", "full_name", ""),
			"projectName":   firstOr("project", "projectName", ""),
			"loggedHours":   1,
			"approvedHours": 1,
			"categories":    1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "userName", Value: 1}, {Key: "projectName", Value: 1}}}},
	}
}

// categoryHoursPipeline totals hours per user, project and task category.
func categoryHoursPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		unwindDataSheet(),
		lookup(categoriesCollection, "task_category_id", "category"),
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"user_id":    "$user_id",
				"project_id": "$project_id",
				"category":   firstOr("category", "category", ""),
			},
			"loggedHours":   bson.M{"$sum": hoursExpr},
			"approvedHours": bson.M{"$sum": approvedHoursExpr},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"user_id":       "$_id.user_id",
			"project_id":    "$_id.project_id",
			"category":      "$_id.category",
			"loggedHours":   1,
			"approvedHours": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}

// statusCountPipeline counts a user's timesheets per status.
func statusCountPipeline(userID bson.ObjectID, r domain.DateRange) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": userID,
			"endDate": bson.M{"$gte": r.Start, "$lte": r.End},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "status": "$_id", "count": 1}}},
		{{Key: "$sort", Value: bson.D{{Key: "status", Value: 1}}}},
	}
}

// expandedTeamPagePipeline pages through a project's roster and joins each member's user record.
func expandedTeamPagePipeline(projectID bson.ObjectID, limit, offset int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"project": projectID}}},
		{{Key: "$unwind", Value: "$team_members"}},
		{{Key: "$skip", Value: int64(offset)}},
		{{Key: "$limit", Value: int64(limit)}},
		lookup(usersCollection, "team_members.userid", "user"),
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"_id":              "$user._id",
			"full_name":        "$user.full_name",
			"email":            "$user.email",
			"profile_pic_path": "$user.profile_pic_path",
		}}},
	}
}

// statusReportsPipeline lists reports newest first with project and lead names.
func statusReportsPipeline(match bson.M, limit, offset int) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64(offset)}},
			bson.D{{Key: "$limit", Value: int64(limit)}},
		)
	}
	return append(pipeline,
		lookup(projectsCollection, "project_name", "project"),
		lookup(usersCollection, "project_lead", "lead"),
		bson.D{{Key: "$addFields", Value: bson.M{
			"projectTitle": firstOr("project", "projectName", ""),
			"leadName":     firstOr("lead", "full_name", ""),
		}}},
		bson.D{{Key: "$project", Value: bson.M{"project": 0, "lead": 0}}},
	)
}

// projectListFilter builds the listing filter. Names match case-insensitively by substring.
func projectListFilter(f domain.ProjectFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.ClientName != "" {
		filter["clientName"] = bson.Regex{Pattern: regexp.QuoteMeta(f.ClientName), Options: "i"}
	}
	if f.ProjectName != "" {
		filter["projectName"] = bson.Regex{Pattern: regexp.QuoteMeta(f.ProjectName), Options: "i"}
	}
	return filter
}
