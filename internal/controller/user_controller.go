package controller

import (
	"strconv"

	"patch_backend/internal/model"
	"patch_backend/internal/service"
	"patch_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户资料与定位相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// UpdateProfileRequest 资料更新请求，缺省字段不修改
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FirstName *string            `json:"firstName"`
	LastName  *string            `json:"lastName"`
	Password  *string            `json:"password"`
	Interests *[]string          `json:"interests"`
	School    *string            `json:"school"`
	Hometown  *string            `json:"hometown"`
	Job       *string            `json:"job"`
	Links     *map[string]string `json:"links"`
}

// UpdateLocationRequest 定位更新，经纬度缺一不可
// swagger:model UpdateLocationRequest
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// UpdateRadiusRequest 发现半径设置（英里）
// swagger:model UpdateRadiusRequest
type UpdateRadiusRequest struct {
	Radius *float64 `json:"radius" binding:"required"`
}

// ContactsCheckRequest 通讯录注册状态查询
// swagger:model ContactsCheckRequest
type ContactsCheckRequest struct {
	PhoneNumbers []string `json:"phoneNumbers" binding:"required"`
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.Profile(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetUser godoc
// @Summary 按ID查看用户资料
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	user, err := c.UserService.Profile(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新当前用户资料
// @Description 只更新请求中出现的字段；links 的键有白名单限制
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "links 键不合法"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	in := service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		School:    req.School,
		Hometown:  req.Hometown,
		Job:       req.Job,
	}
	if req.Interests != nil {
		interests := model.StringList(*req.Interests)
		in.Interests = &interests
	}
	if req.Links != nil {
		links := model.SocialLinks(*req.Links)
		in.Links = &links
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, in)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateLocation godoc
// @Summary 上报当前定位
// @Description 最后写入生效；同一账号有最小更新间隔限制
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateLocationRequest true "经纬度"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "经纬度缺失"
// @Failure 429 {object} util.Response "更新过于频繁"
// @Router /api/user/location [patch]
func (c *UserController) UpdateLocation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Both latitude and longitude are required")
		return
	}

	if err := c.UserService.UpdateLocation(claims.UserID, *req.Latitude, *req.Longitude); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"latitude":  *req.Latitude,
		"longitude": *req.Longitude,
	})
}

// UpdateRadius godoc
// @Summary 设置发现半径
// @Description 单位英里，超出 [0,50] 会被夹到边界
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateRadiusRequest true "半径"
// @Success 200 {object} util.Response "成功"
// @Router /api/user/radius [put]
func (c *UserController) UpdateRadius(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateRadiusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	radius, err := c.UserService.UpdateRadius(claims.UserID, *req.Radius)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"radius": radius})
}

// SearchUsers godoc
// @Summary 按用户名或姓名搜索用户
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   query query string true "关键词，至少2个字符"
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Failure 400 {object} util.Response "关键词过短"
// @Router /api/users/search [get]
func (c *UserController) SearchUsers(ctx *gin.Context) {
	query := ctx.Query("query")
	if len(query) < 2 {
		util.BadRequest(ctx, "Search query must be at least 2 characters")
		return
	}

	users, err := c.UserService.Search(query)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// CheckContacts godoc
// @Summary 查询通讯录中哪些号码是注册用户
// @Description 返回规范化号码到注册状态的映射，非法号码被静默跳过
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ContactsCheckRequest true "号码列表"
// @Success 200 {object} util.Response "成功"
// @Router /api/contacts/check [post]
func (c *UserController) CheckContacts(ctx *gin.Context) {
	var req ContactsCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.UserService.CheckContacts(req.PhoneNumbers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
