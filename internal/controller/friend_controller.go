package controller

import (
	"strconv"

	"patch_backend/internal/service"
	"patch_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// FriendController 处理好友关系相关的HTTP请求
type FriendController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendController(friendshipService *service.FriendshipService) *FriendController {
	return &FriendController{
		FriendshipService: friendshipService,
	}
}

// FriendRequestBody 好友申请
// swagger:model FriendRequestBody
type FriendRequestBody struct {
	FriendID uint `json:"friendId" binding:"required"`
}

// RespondRequestBody 处理好友申请，拒绝会删除申请记录
// swagger:model RespondRequestBody
type RespondRequestBody struct {
	IsAccepted *bool `json:"isAccepted" binding:"required"`
}

// GetFriends godoc
// @Summary 获取好友列表
// @Description 双方任一方向已接受的关系都算好友
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/friends [get]
func (c *FriendController) GetFriends(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friends, err := c.FriendshipService.Friends(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}

// SendRequest godoc
// @Summary 发送好友申请
// @Description 任一方向已有申请或好友关系都会返回冲突
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body FriendRequestBody true "目标用户"
// @Success 201 {object} util.Response "申请已发送"
// @Failure 404 {object} util.Response "目标用户不存在"
// @Failure 409 {object} util.Response "关系已存在"
// @Router /api/friends/requests [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FriendRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.Request(claims.UserID, req.FriendID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"message": "Friend request sent successfully"})
}

// GetRequests godoc
// @Summary 获取待处理的好友申请
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.PendingRequest} "成功"
// @Router /api/friends/requests [get]
func (c *FriendController) GetRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	requests, err := c.FriendshipService.PendingRequests(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

// RespondRequest godoc
// @Summary 接受或拒绝好友申请
// @Description 只有申请的接收方可以处理；拒绝会删除记录，之后可重新申请
// @Tags 好友
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "申请ID"
// @Param   body body RespondRequestBody true "处理结果"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/friends/requests/{id} [put]
func (c *FriendController) RespondRequest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的申请ID")
		return
	}

	var req RespondRequestBody
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FriendshipService.Respond(uint(id), claims.UserID, *req.IsAccepted); err != nil {
		util.FromError(ctx, err)
		return
	}

	if *req.IsAccepted {
		util.Success(ctx, gin.H{"message": "Friend request accepted"})
	} else {
		util.Success(ctx, gin.H{"message": "Friend request rejected"})
	}
}

// RemoveFriend godoc
// @Summary 删除好友
// @Tags 好友
// @Produce  json
// @Security ApiKeyAuth
// @Param   friendId path int true "好友用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "好友关系不存在"
// @Router /api/friends/{friendId} [delete]
func (c *FriendController) RemoveFriend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	friendID, err := strconv.ParseUint(ctx.Param("friendId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	if err := c.FriendshipService.Remove(claims.UserID, uint(friendID)); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Friend removed successfully"})
}
