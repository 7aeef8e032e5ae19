package router

import (
	"go-acquire/controller"
	"go-acquire/middleware"
	"go-acquire/utils"
	"go-acquire/ws"

	"github.com/gin-gonic/gin"
)

func InitRouter(r *gin.Engine, rc *controller.RoomController, hub *ws.Hub, issuer *utils.TokenIssuer) {
	// 房间接口路由
	api := r.Group("/room")
	{
		api.POST("/create", rc.CreateRoom)
		api.GET("/list", rc.GetRoomList)
		api.POST("/delete", rc.DeleteRoom)
		api.POST("/:roomID/join", rc.JoinRoom)
		api.GET("/:roomID/state", rc.GetRoomState)
		api.GET("/:roomID/chains", rc.GetChains)
		api.GET("/:roomID/tile/:coordinate", rc.GetTileInfo)
		api.GET("/:roomID/end-eligible", rc.GetEndEligible)
		api.POST("/:roomID/action", middleware.AuthMiddleware(issuer), rc.SubmitAction)
	}

	// WebSocket 路由
	r.GET("/ws", hub.HandleWebSocket)
}
