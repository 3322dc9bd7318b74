package main

import (
	"github.com/gin-gonic/gin"

	"mindcare-social/apps/reaction-service/dao"
	"mindcare-social/apps/reaction-service/handler"
	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/apps/reaction-service/service"
	"mindcare-social/pkg/config"
	"mindcare-social/pkg/server"
)

func main() {
	// 创建应用程序
	app := server.NewApplication("reaction-service")

	// 启用HTTP服务器
	app.EnableHTTP()

	// 按配置选择数据源
	var reactionDAO dao.ReactionDAO
	var streakDAO dao.StreakDAO
	switch app.GetConfig().DataSource {
	case config.DataSourcePostgres:
		postgreSQL := app.GetPostgreSQL()

		// 自动迁移数据库表结构
		if err := postgreSQL.AutoMigrate(
			&model.Reaction{},
			&model.ReactionStreak{},
		); err != nil {
			panic("Failed to migrate database: " + err.Error())
		}

		reactionDAO = dao.NewReactionDAO(postgreSQL)
		streakDAO = dao.NewStreakDAO(postgreSQL)
	case config.DataSourceMemory:
		reactionDAO = dao.NewMemoryReactionDAO()
		streakDAO = dao.NewMemoryStreakDAO()
	default:
		panic("reaction-service 不支持的数据源: " + app.GetConfig().DataSource)
	}

	// 初始化Service层
	svc := service.NewService(reactionDAO, streakDAO, app.GetRedisClient(), app.GetKafkaProducer(), app.GetLogger())

	// 初始化Handler
	httpHandler := handler.NewHTTPHandler(svc, app.GetLogger())

	// 注册HTTP路由
	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		httpHandler.RegisterRoutes(engine)
	})

	// 运行应用程序
	if err := app.Run(); err != nil {
		panic(err)
	}
}
