package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal"
	"github.com/yourname/dreamcatcher/internal/service"
)

func PostGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: title required")
			return
		}

		if err := service.ValidateGoalRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Goal validation failed")
			return
		}

		goal, err := service.CreateGoal(c.Request.Context(), app.GoalRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save goal")
			return
		}

		HandleCreated(c, app.Logger(), goal)
	}
}

func ListGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.GoalQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid query")
			return
		}

		goals, err := service.ListGoals(c.Request.Context(), app.GoalRepo(), currentUser(c), &q)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), goals, listMeta(q.Skip, q.Limit, len(goals)))
	}
}

func GetGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goal, err := service.GetGoal(c.Request.Context(), app.GoalRepo(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goal")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func PutGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch service.GoalPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		goal, err := service.UpdateGoal(c.Request.Context(), app.GoalRepo(), currentUser(c), c.Param("id"), &patch)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update goal")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func DeleteGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.DeleteGoal(c.Request.Context(), app.GoalRepo(), currentUser(c), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete goal")
			return
		}
		HandleNoContent(c, app.Logger())
	}
}

func SuggestGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goal, err := service.SuggestGoal(c.Request.Context(), app.GoalRepo(), app.Assistant(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to suggest goal steps")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func GetGoalProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goal, err := service.GetGoal(c.Request.Context(), app.GoalRepo(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goal")
			return
		}
		HandleSuccess(c, app.Logger(), service.CalculateGoalProgress(goal), nil)
	}
}

func GetGoalCategories(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), internal.GoalCategories, nil)
	}
}

func GetGoalStatuses(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), internal.GoalStatuses, nil)
	}
}
