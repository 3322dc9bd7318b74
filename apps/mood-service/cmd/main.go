package main

import (
	"github.com/gin-gonic/gin"

	"mindcare-social/apps/mood-service/dao"
	"mindcare-social/apps/mood-service/handler"
	"mindcare-social/apps/mood-service/service"
	"mindcare-social/pkg/config"
	"mindcare-social/pkg/server"
)

func main() {
	// 创建应用程序
	app := server.NewApplication("mood-service")

	// 启用HTTP服务器
	app.EnableHTTP()

	// 按配置选择数据源
	var moodDAO dao.MoodDAO
	switch app.GetConfig().DataSource {
	case config.DataSourceMongo:
		moodDAO = dao.NewMongoDAO(app.GetMongoDB().GetDatabase())
	case config.DataSourceMemory:
		moodDAO = dao.NewMemoryMoodDAO()
	default:
		panic("mood-service 不支持的数据源: " + app.GetConfig().DataSource)
	}

	// 初始化Service层
	svc := service.NewService(moodDAO, app.GetKafkaProducer(), app.GetLogger())

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
