package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/dreamcatcher/internal/service"
)

func PostSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.SleepLogRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		app.Logger().Debugf("Parsed SleepLogRequest: %+v", body)

		if err := service.ValidateSleepLogRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		log, err := service.CreateSleepLog(c.Request.Context(), app.SleepRepo(), app.DreamRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save log")
			return
		}

		HandleCreated(c, app.Logger(), log)
	}
}

func GetSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.SleepLogQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid query")
			return
		}

		logs, err := service.ListSleepLogs(c.Request.Context(), app.SleepRepo(), currentUser(c), &q)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch logs")
			return
		}

		HandleSuccess(c, app.Logger(), logs, listMeta(q.Skip, q.Limit, len(logs)))
	}
}

func GetSleepLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		log, err := service.GetSleepLog(c.Request.Context(), app.SleepRepo(), currentUser(c), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch log")
			return
		}
		HandleSuccess(c, app.Logger(), log, nil)
	}
}

func PutSleepLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch service.SleepLogPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		log, err := service.UpdateSleepLog(c.Request.Context(), app.SleepRepo(), app.DreamRepo(), currentUser(c), c.Param("id"), &patch)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update log")
			return
		}
		HandleSuccess(c, app.Logger(), log, nil)
	}
}

func DeleteSleepLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.DeleteSleepLog(c.Request.Context(), app.SleepRepo(), currentUser(c), c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete log")
			return
		}
		HandleNoContent(c, app.Logger())
	}
}

func GetSleepStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := service.GetSleepStats(c.Request.Context(), app.SleepRepo(), currentUser(c))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch logs for stats")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}
