package public

import (
	"errors"

	"github.com/tribute-next/internal/http/response"
	"github.com/tribute-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var redeemErrorRules = []mappedHandlerError{
	{target: service.ErrMissingInformation, code: response.CodeBadRequest, msg: "Please fill in all required fields"},
	{target: service.ErrInvalidGift, code: response.CodeBadRequest, msg: "Unknown gift"},
	{target: service.ErrInsufficientBalance, code: response.CodeBadRequest, msg: "Not enough balance for this gift"},
	{target: service.ErrBalanceNotFound, code: response.CodeInternal, msg: "Balance is not available"},
	{target: service.ErrBalanceFetchFailed, code: response.CodeInternal, msg: "Balance is not available"},
	{target: service.ErrOrderPersistenceFailed, code: response.CodeInternal, msg: "Could not save your order"},
	{target: service.ErrBalanceUpdateConflict, code: response.CodeInternal, msg: "Balance was modified, please refresh and try again"},
}

func respondRedeemError(c *gin.Context, err error) {
	respondWithMappedError(c, err, redeemErrorRules, response.CodeInternal, "Redemption failed")
}
