package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bibocomdigital/bibomarket-frontend/internal/follow"
	"github.com/bibocomdigital/bibomarket-frontend/internal/session"
	"github.com/bibocomdigital/bibomarket-frontend/pkg/response"
)

// ToggleFollow 切换关注状态
// @Summary Toggle the follow edge towards a user
// @Tags follow
// @Produce json
// @Param user_id path int true "target user id"
// @Security BearerAuth
// @Success 200 {object} response.Response{data=model.ToggleResult}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/follow [post]
func (h *Handler) ToggleFollow(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	sess := session.FromContext(c.Request.Context())
	res, err := h.followSvc.Toggle(c.Request.Context(), sess, targetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, res)
}

// ListFollowers 查询粉丝列表
// @Summary List the accounts following a user, newest edge first
// @Tags follow
// @Produce json
// @Param user_id path int true "target user id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} response.Response{data=model.FollowerPage}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pageData, err := h.followSvc.Followers(c.Request.Context(), targetID, page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, pageData)
}

// ListFollowing 查询关注列表
// @Summary List the accounts a user follows, newest edge first
// @Tags follow
// @Produce json
// @Param user_id path int true "target user id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} response.Response{data=model.FollowerPage}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pageData, err := h.followSvc.Following(c.Request.Context(), targetID, page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, pageData)
}

// Relationship 关注组件状态
// @Summary Resolve the follow widget state for a profile view
// @Description Counters are always returned; the following flag is only
// @Description resolved for authenticated viewers. Anonymous viewers get
// @Description state ANONYMOUS, never a claimed NOT_FOLLOWING.
// @Tags follow
// @Produce json
// @Param user_id path int true "profile user id"
// @Success 200 {object} response.Response{data=follow.Snapshot}
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/relationship [get]
func (h *Handler) Relationship(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	sess := session.FromContext(c.Request.Context())

	view := follow.NewView(h.followSvc, sess, targetID)
	defer view.Close()
	if err := view.Load(c.Request.Context()); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, view.Snapshot())
}

// Suggestions 推荐关注
// @Summary Suggest accounts for the viewer to follow
// @Tags follow
// @Produce json
// @Param limit query int false "max suggestions" default(5)
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.SuggestedUser}
// @Failure 401 {object} response.Response
// @Router /api/v1/users/suggestions [get]
func (h *Handler) Suggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	sess := session.FromContext(c.Request.Context())
	items, err := h.followSvc.Suggestions(c.Request.Context(), sess, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, items)
}
