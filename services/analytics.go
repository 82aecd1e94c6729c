package services

import (
	"sort"
	"time"

	"taskflow-app/taskflow/models"
)

type AnalyticsOverview struct {
	TotalTasks        int     `json:"totalTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	PendingTasks      int     `json:"pendingTasks"`
	InProgressTasks   int     `json:"inProgressTasks"`
	HighPriorityTasks int     `json:"highPriorityTasks"`
	TasksWithDueDate  int     `json:"tasksWithDueDate"`
	OverdueTasks      int     `json:"overdueTasks"`
	CompletionRate    float64 `json:"completionRate"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type Analytics struct {
	Overview        AnalyticsOverview `json:"overview"`
	TasksByStatus   []StatusCount     `json:"tasksByStatus"`
	TasksByPriority []PriorityCount   `json:"tasksByPriority"`
	TasksByTags     []TagCount        `json:"tasksByTags"`
}

// ComputeAnalytics aggregates a task collection in one pass. A task is
// overdue when it is not completed and its due date lies before now.
// The completion rate is zero, not NaN, for an empty collection.
func ComputeAnalytics(tasks []models.EnhancedTask, now time.Time) Analytics {
	overview := AnalyticsOverview{TotalTasks: len(tasks)}
	byStatus := make(map[string]int)
	byPriority := make(map[string]int)
	byTag := make(map[string]int)

	for i := range tasks {
		task := &tasks[i]

		if task.Completed {
			overview.CompletedTasks++
		}
		switch task.Status {
		case models.StatusPending:
			overview.PendingTasks++
		case models.StatusInProgress:
			overview.InProgressTasks++
		}
		if task.Priority == models.PriorityHigh {
			overview.HighPriorityTasks++
		}
		if task.DueDate != nil {
			overview.TasksWithDueDate++
			if !task.Completed && task.DueDate.Before(now) {
				overview.OverdueTasks++
			}
		}

		byStatus[string(task.Status)]++
		byPriority[string(task.Priority)]++
		for _, tag := range task.Tags {
			byTag[tag]++
		}
	}

	if overview.TotalTasks > 0 {
		overview.CompletionRate = float64(overview.CompletedTasks) / float64(overview.TotalTasks)
	}

	return Analytics{
		Overview:        overview,
		TasksByStatus:   statusCounts(byStatus),
		TasksByPriority: priorityCounts(byPriority),
		TasksByTags:     topTags(byTag, 10),
	}
}

func statusCounts(counts map[string]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func priorityCounts(counts map[string]int) []PriorityCount {
	out := make([]PriorityCount, 0, len(counts))
	for priority, count := range counts {
		out = append(out, PriorityCount{Priority: priority, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}

func topTags(counts map[string]int, limit int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
