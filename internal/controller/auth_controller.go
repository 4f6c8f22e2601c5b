package controller

import (
	"patch_backend/internal/model"
	"patch_backend/internal/service"
	"patch_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthController 处理注册登录相关的HTTP请求
type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	PhoneNumber string            `json:"phoneNumber" binding:"required"`
	Username    string            `json:"username" binding:"required"`
	Password    string            `json:"password" binding:"required,min=6"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Interests   []string          `json:"interests"`
	School      string            `json:"school"`
	Hometown    string            `json:"hometown"`
	Job         string            `json:"job"`
	Links       map[string]string `json:"links"`
	Latitude    *float64          `json:"latitude"`
	Longitude   *float64          `json:"longitude"`
}

// LoginRequest 登录请求
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary 用户注册
// @Description 注册新账号，用户名和手机号唯一，手机号入库前做E.164规范化
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "注册信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "手机号格式错误"
// @Failure 409 {object} util.Response "用户名或手机号已被注册"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Interests:   req.Interests,
		School:      req.School,
		Hometown:    req.Hometown,
		Job:         req.Job,
		Links:       req.Links,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := c.AuthService.Register(user); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// Login godoc
// @Summary 用户登录
// @Description 用户名密码登录，返回JWT与用户信息
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response "成功"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}
