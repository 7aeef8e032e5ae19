package controller

import (
	"go-acquire/dto"
	"go-acquire/middleware"
	"go-acquire/service"
	"go-acquire/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoomController struct {
	rooms  *service.RoomManager
	issuer *utils.TokenIssuer
	log    *zap.Logger
}

func NewRoomController(rooms *service.RoomManager, issuer *utils.TokenIssuer, log *zap.Logger) *RoomController {
	return &RoomController{rooms: rooms, issuer: issuer, log: log}
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "缺少必要字段")
		return
	}

	room, err := rc.rooms.CreateRoom(c.Request.Context(), req)
	if err != nil {
		rc.log.Error("创建房间失败", zap.Error(err))
		fail(c, statusOf(err), err.Error())
		return
	}
	ok(c, "房间创建成功", dto.CreateRoomResponse{RoomID: room.ID})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	var req dto.DeleteRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "缺少必要字段")
		return
	}
	if err := rc.rooms.Delete(c.Request.Context(), req.RoomID); err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	ok(c, "房间删除成功", nil)
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	ok(c, "获取成功", dto.GetRoomList{Rooms: rc.rooms.List()})
}

// JoinRoom 入座并签发座位令牌
func (rc *RoomController) JoinRoom(c *gin.Context) {
	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "缺少必要字段")
		return
	}
	room, err := rc.rooms.Get(c.Param("roomID"))
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	seat, err := room.Join(req.Name)
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	token, err := rc.issuer.GenerateSeatToken(room.ID, seat.PlayerID)
	if err != nil {
		rc.log.Error("签发令牌失败", zap.Error(err))
		fail(c, http.StatusInternalServerError, "签发令牌失败")
		return
	}
	ok(c, "加入成功", dto.JoinRoomResponse{PlayerID: seat.PlayerID, Token: token})
}

func (rc *RoomController) GetRoomState(c *gin.Context) {
	room, err := rc.rooms.Get(c.Param("roomID"))
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	ok(c, "获取成功", dto.Redact(room.State(), ""))
}

// SubmitAction 提交一个动作，需要座位令牌
func (rc *RoomController) SubmitAction(c *gin.Context) {
	room, err := rc.rooms.Get(c.Param("roomID"))
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	var msg dto.ActionMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		fail(c, http.StatusBadRequest, "消息解析失败")
		return
	}
	action, err := dto.DecodeAction(msg)
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	playerID := c.GetString(middleware.ContextPlayerID)
	state, err := room.DispatchAs(c.Request.Context(), playerID, action)
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	ok(c, "操作成功", dto.Redact(state, playerID))
}
