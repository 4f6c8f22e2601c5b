package controller

import (
	"patch_backend/internal/service"
	"patch_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DiscoveryController 附近好友发现接口
type DiscoveryController struct {
	DiscoveryService *service.DiscoveryService
}

func NewDiscoveryController(discoveryService *service.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{
		DiscoveryService: discoveryService,
	}
}

// NearbyRequest 附近好友查询，上传原始通讯录号码
// swagger:model NearbyRequest
type NearbyRequest struct {
	PhoneNumbers []string `json:"phoneNumbers" binding:"required"`
}

// NearbyMutuals godoc
// @Summary 发现附近的潜在好友
// @Description 上传通讯录号码，返回半径内、有共同联系人、且与当前用户
// @Description 没有好友关系或待处理申请的注册用户，按共同联系人数排序。
// @Description 通讯录只在本次请求内使用，不落库。
// @Tags 发现
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body NearbyRequest true "通讯录号码"
// @Success 200 {object} util.Response{data=[]service.Candidate} "成功，可能为空列表"
// @Failure 400 {object} util.Response "当前用户没有定位"
// @Router /api/discovery/nearby [post]
func (c *DiscoveryController) NearbyMutuals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req NearbyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	candidates, err := c.DiscoveryService.NearbyMutuals(claims.UserID, req.PhoneNumbers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, candidates)
}
