/*
 * @module api/controllers/response
 * @description 统一API响应结构与构造函数，所有控制器共享同一响应信封
 * @architecture 分层架构 - 表现层
 * @documentReference dev_docs/model.md
 * @stateFlow 无状态
 * @rules 业务状态通过信封status字段表达，HTTP状态码保持200
 * @dependencies 无
 * @refs api/controllers
 */

package controllers

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status"` // 0表示成功，非0表示失败
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data"`
}

// SuccessResponse 构造成功响应
func SuccessResponse(msg string, data interface{}) *APIResponse {
	return &APIResponse{Status: 0, Msg: msg, Data: data}
}

// ErrorResponse 构造指定状态码的失败响应，err非nil时附加错误详情
func ErrorResponse(status int, msg string, err error) *APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &APIResponse{Status: status, Msg: msg}
}

// BadRequestResponse 构造参数错误响应
func BadRequestResponse(msg string, err error) *APIResponse {
	return ErrorResponse(400, msg, err)
}

// NotFoundResponse 构造资源不存在响应
func NotFoundResponse(msg string, err error) *APIResponse {
	return ErrorResponse(404, msg, err)
}

// InternalErrorResponse 构造内部错误响应
func InternalErrorResponse(msg string, err error) *APIResponse {
	return ErrorResponse(500, msg, err)
}
